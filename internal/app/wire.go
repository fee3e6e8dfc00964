package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/keyprobe/internal/config"
	"github.com/mandalnilabja/keyprobe/internal/keycheck"
	"github.com/mandalnilabja/keyprobe/internal/metrics"
	"github.com/mandalnilabja/keyprobe/internal/provider/openai"
	"github.com/mandalnilabja/keyprobe/internal/tokenizer"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler"
)

// NewService builds the key check service for cfg. m may be nil.
func NewService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *keycheck.Service {
	var provOpts []openai.Option
	if cfg.UpstreamTimeout > 0 {
		provOpts = append(provOpts, openai.WithTimeout(cfg.UpstreamTimeout))
	}

	tok := tokenizer.New()
	go func() {
		if err := tok.Warm(keycheck.ProbeModel); err != nil && logger != nil {
			logger.Warn("prompt token estimates disabled", "error", err)
		}
	}()

	return keycheck.New(
		openai.New(cfg.UpstreamBaseURL, provOpts...),
		logger,
		keycheck.WithMetrics(m),
		keycheck.WithTokenizer(tok),
	)
}

// NewHandler builds the fully wired HTTP handler for cfg.
func NewHandler(cfg *config.Config, logger *slog.Logger) http.Handler {
	var m *metrics.Metrics
	if cfg.EnableMetrics {
		m = metrics.New()
	}

	repo := handler.NewRepo(NewService(cfg, logger, m), logger, cfg.EnableWebUI)
	return NewRouter(repo, &RouterOptions{
		EnableWebUI: cfg.EnableWebUI,
		Logger:      logger,
		Metrics:     m,
	})
}
