package webui

import (
	"io/fs"
	"log/slog"

	"github.com/mandalnilabja/keyprobe/web"
)

// Handlers holds the dependencies for the landing page handlers.
type Handlers struct {
	FS     fs.FS
	Logger *slog.Logger
}

// New creates a new instance of landing page handlers backed by the
// embedded web assets.
func New(logger *slog.Logger) *Handlers {
	return NewWithFS(web.FS, logger)
}

// NewWithFS creates landing page handlers serving files from fsys.
func NewWithFS(fsys fs.FS, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		FS:     fsys,
		Logger: logger,
	}
}
