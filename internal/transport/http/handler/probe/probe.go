// Package probe serves the key check and chat probe API routes.
package probe

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/keyprobe/internal/credential"
	"github.com/mandalnilabja/keyprobe/internal/keycheck"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/middleware"
)

// Handlers holds the dependencies for the probe HTTP handlers.
type Handlers struct {
	Service *keycheck.Service
	Logger  *slog.Logger
}

// New creates a new instance of probe handlers.
func New(svc *keycheck.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		Service: svc,
		Logger:  logger,
	}
}

// CheckKey handles POST /api/check-key.
func (h *Handlers) CheckKey(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "check_key", h.Service.CheckKey)
}

// Chat handles POST /api/chat.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "chat", h.Service.ProbeChat)
}

// serve decodes the key, runs op and writes exactly one JSON response.
func (h *Handlers) serve(w http.ResponseWriter, r *http.Request, name string, op func(context.Context, any) keycheck.Response) {
	if r.Method != http.MethodPost {
		shared.MethodNotAllowed(w)
		return
	}

	start := time.Now()
	raw := shared.DecodeKey(r)
	resp := op(r.Context(), raw)

	h.logResult(r, name, raw, resp, time.Since(start))
	shared.WriteJSON(w, resp, resp.Status)
}

func (h *Handlers) logResult(r *http.Request, name string, raw any, resp keycheck.Response, d time.Duration) {
	level := slog.LevelInfo
	switch {
	case resp.Status >= 500:
		level = slog.LevelError
	case resp.Status >= 400:
		level = slog.LevelWarn
	}

	attrs := []any{
		"operation", name,
		"status", resp.Status,
		"category", string(resp.Category),
		"key_preview", credential.Preview(raw),
		"request_id", middleware.GetRequestID(r.Context()),
		"duration_ms", d.Milliseconds(),
	}
	if resp.PromptTokens > 0 {
		attrs = append(attrs, "prompt_tokens", resp.PromptTokens)
	}
	h.Logger.Log(r.Context(), level, "key probe", attrs...)
}
