package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":          {Data: []byte("<html>keyprobe</html>")},
		"static/css/site.css": {Data: []byte("body{}")},
	}
}

func TestIndex(t *testing.T) {
	h := NewWithFS(testFS(), nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "<html>keyprobe</html>"},
		{"api index", http.MethodGet, "/api/index", http.StatusOK, "<html>keyprobe</html>"},
		{"post rejected", http.MethodPost, "/api/index", http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`},
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound, `{"error":"Not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Index(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestIndexMissingPage(t *testing.T) {
	h := NewWithFS(fstest.MapFS{}, nil)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to serve page"}`, rec.Body.String())
}

func TestStatic(t *testing.T) {
	h := NewWithFS(testFS(), nil)
	static := h.Static()

	rec := httptest.NewRecorder()
	static.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = httptest.NewRecorder()
	static.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmbeddedLandingPage(t *testing.T) {
	h := New(nil)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
