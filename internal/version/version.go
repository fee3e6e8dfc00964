// Package version holds build metadata injected via -ldflags.
package version

// Version is the application version, overridden at build time.
var Version = "dev"
