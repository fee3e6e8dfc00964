package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mandalnilabja/keyprobe/internal/config"
	"github.com/mandalnilabja/keyprobe/internal/keycheck"
	"github.com/mandalnilabja/keyprobe/internal/provider/openai"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
		want    string
	}{
		{name: "text", cfg: config.Config{LogLevel: "info", LogFormat: "text"}, want: "level=INFO"},
		{name: "json", cfg: config.Config{LogLevel: "debug", LogFormat: "json"}, want: `"level":"INFO"`},
		{name: "bad level", cfg: config.Config{LogLevel: "loud", LogFormat: "text"}, wantErr: true},
		{name: "bad format", cfg: config.Config{LogLevel: "info", LogFormat: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closer, err := setupLogger(&tt.cfg, &buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closer.Close()

			logger.Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyprobe.log")
	var buf bytes.Buffer

	logger, closer, err := setupLogger(&config.Config{LogLevel: "info", LogFile: path}, &buf)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}

func TestRunProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer sk-good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"message":"bad key"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"I'm good!"}}]}`)
	}))
	defer srv.Close()
	svc := keycheck.New(openai.New(srv.URL), nil)

	var out bytes.Buffer
	require.NoError(t, runProbe(context.Background(), &out, "chat", svc, "sk-good"))
	assert.Equal(t, "I'm good!", gjson.Get(out.String(), "message").String())

	out.Reset()
	err := runProbe(context.Background(), &out, "check", svc, "sk-bad")
	assert.True(t, errors.Is(err, errProbeFailed))
	assert.Contains(t, gjson.Get(out.String(), "error").String(), "invalid or expired")

	assert.Error(t, runProbe(context.Background(), &out, "nope", svc, "sk-good"))
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "keyprobe")
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := loadConfig(&rootFlags{
		configPath: filepath.Join(t.TempDir(), "missing.toml"),
		port:       "9000",
		logLevel:   "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}
