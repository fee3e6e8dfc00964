package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mandalnilabja/keyprobe/internal/config"
	"github.com/mandalnilabja/keyprobe/internal/version"
)

// Log rotation defaults for log_file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 10
	logMaxAgeDays = 30
)

// setupLogger builds the process logger from cfg. The returned closer
// releases the log file, if any.
func setupLogger(cfg *config.Config, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if cfg.LogLevel == "" {
		level = slog.LevelInfo
	} else if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	out := stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, rotator)
		closer = rotator
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text", "":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, nil, fmt.Errorf("invalid log_format %q: want text or json", cfg.LogFormat)
	}

	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func printStartupBanner(cfg *config.Config) {
	base := "http://localhost" + cfg.ServerPort
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "keyprobe %s - OpenAI API key checker\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	if cfg.EnableWebUI {
		fmt.Fprintf(os.Stderr, "Web UI:     %s/\n", base)
	}
	fmt.Fprintf(os.Stderr, "Check key:  POST %s/api/check-key\n", base)
	fmt.Fprintf(os.Stderr, "Chat probe: POST %s/api/chat\n", base)
	if cfg.EnableMetrics {
		fmt.Fprintf(os.Stderr, "Metrics:    %s/metrics\n", base)
	}
	fmt.Fprintf(os.Stderr, "Upstream:   %s\n", cfg.UpstreamBaseURL)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
