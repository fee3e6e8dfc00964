package webui

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/shared"
)

const indexFile = "index.html"

// Index serves the landing page. It answers GET / and GET /api/index.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		shared.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" && r.URL.Path != "/api/index" {
		shared.WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	page, err := fs.ReadFile(h.FS, indexFile)
	if err != nil {
		h.Logger.Error("failed to read landing page", "error", err)
		shared.WriteJSONError(w, "Failed to serve page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(page)
	}
}

// Static serves the landing page assets under /static/.
func (h *Handlers) Static() http.Handler {
	fileServer := http.FileServer(http.FS(h.FS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Directory listings are not part of the public surface.
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
