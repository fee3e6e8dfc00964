package app

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mandalnilabja/keyprobe/internal/metrics"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/middleware"
)

// Route paths served by the router.
const (
	RouteCheckKey = "/api/check-key"
	RouteChat     = "/api/chat"
	RouteIndex    = "/api/index"
	RouteHealth   = "/api/health"
	RouteMetrics  = "/metrics"
	RouteStatic   = "/static/"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	EnableWebUI bool
	Logger      *slog.Logger

	// Metrics, when non-nil, instruments every request and serves /metrics.
	Metrics *metrics.Metrics
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	if opts == nil {
		opts = &RouterOptions{}
	}
	mux := http.NewServeMux()

	// The probe routes enforce POST themselves so other methods get a JSON 405.
	mux.HandleFunc(RouteCheckKey, repo.Probe.CheckKey)
	mux.HandleFunc(RouteChat, repo.Probe.Chat)

	mux.HandleFunc("GET "+RouteHealth, repo.Infra.HealthCheck)

	if opts.Metrics != nil {
		mux.Handle("GET "+RouteMetrics, opts.Metrics.Handler())
	}

	if opts.EnableWebUI {
		mux.HandleFunc("/{$}", repo.WebUI.Index)
		mux.HandleFunc(RouteIndex, repo.WebUI.Index)
		mux.Handle("GET "+RouteStatic, repo.WebUI.Static())
	} else {
		mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)
	}

	// Apply middleware chain (order: outer to inner)
	chain := []func(http.Handler) http.Handler{
		opts.Metrics.Middleware(RouteCheckKey, RouteChat, RouteIndex, RouteHealth, RouteMetrics, "/"),
	}
	if opts.Logger != nil {
		chain = append(chain, middleware.RequestLogger(opts.Logger))
	}
	chain = append(chain, middleware.RequestID, middleware.CORS)

	h := middleware.Chain(mux, chain...)
	return otelhttp.NewHandler(h, "keyprobe",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
