package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/keyprobe/internal/version"
)

// RootStatus returns JSON status and version information at / when the
// landing page is disabled.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		shared.WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}
	shared.WriteJSON(w, map[string]any{
		"name":    "keyprobe",
		"version": version.Version,
		"status":  "running",
		"web_ui":  h.WebUI,
		"api":     []string{"/api/check-key", "/api/chat"},
	}, http.StatusOK)
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"status":  "active",
		"app":     "keyprobe",
		"version": version.Version,
		"uptime":  time.Since(h.StartTime).Round(time.Second).String(),
	}, http.StatusOK)
}
