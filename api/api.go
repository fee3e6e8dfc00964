// Package api exposes the key checker as standalone http.HandlerFuncs for
// function-per-route platforms. Each function lazily builds the same
// handlers the standalone server uses, configured from the environment.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/mandalnilabja/keyprobe/internal/app"
	"github.com/mandalnilabja/keyprobe/internal/config"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/middleware"
)

// ConfigPathEnv names an optional config file for the functions.
const ConfigPathEnv = "KEYPROBE_CONFIG"

var (
	once    sync.Once
	repo    *handler.Repo
	initErr error
)

func load() (*handler.Repo, error) {
	once.Do(func() {
		cfg, err := config.Load(os.Getenv(ConfigPathEnv))
		if err != nil {
			initErr = err
			return
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		repo = handler.NewRepo(app.NewService(cfg, logger, nil), logger, true)
	})
	return repo, initErr
}

// serve wraps fn with request IDs and CORS and fails closed if the
// configuration could not be loaded.
func serve(w http.ResponseWriter, r *http.Request, fn func(*handler.Repo) http.HandlerFunc) {
	rp, err := load()
	if err != nil {
		slog.Error("keyprobe function init failed", "error", err)
		shared.WriteJSONError(w, "Server misconfigured", http.StatusInternalServerError)
		return
	}
	middleware.Chain(fn(rp), middleware.RequestID, middleware.CORS).ServeHTTP(w, r)
}

// CheckKey handles POST /api/check-key.
func CheckKey(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(rp *handler.Repo) http.HandlerFunc { return rp.Probe.CheckKey })
}

// Chat handles POST /api/chat.
func Chat(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(rp *handler.Repo) http.HandlerFunc { return rp.Probe.Chat })
}

// Index serves the landing page.
func Index(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(rp *handler.Repo) http.HandlerFunc { return rp.WebUI.Index })
}
