// Package web provides the embedded landing page files.
package web

import "embed"

// FS contains the landing page (index.html, static/css, static/js).
//
//go:embed index.html static
var FS embed.FS
