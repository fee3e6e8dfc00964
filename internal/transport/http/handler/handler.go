package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/keyprobe/internal/keycheck"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/probe"
	"github.com/mandalnilabja/keyprobe/internal/transport/http/handler/webui"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Probe *probe.Handlers
	WebUI *webui.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(svc *keycheck.Service, logger *slog.Logger, enableWebUI bool) *Repo {
	return &Repo{
		Probe: probe.New(svc, logger),
		WebUI: webui.New(logger),
		Infra: infra.New(time.Now(), enableWebUI),
	}
}
