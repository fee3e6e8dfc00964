package infra

import "time"

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	StartTime time.Time
	WebUI     bool
}

// New creates a new instance of infrastructure handlers.
func New(startTime time.Time, webUI bool) *Handlers {
	return &Handlers{
		StartTime: startTime,
		WebUI:     webUI,
	}
}
