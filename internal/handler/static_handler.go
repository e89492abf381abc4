package handler

import (
	"context"
	"net/http"
	"path"
	"static-server/internal/models"
	"strings"
)

const (
	headerOpenerPolicy   = "Cross-Origin-Opener-Policy"
	headerEmbedderPolicy = "Cross-Origin-Embedder-Policy"
)

// mimeOverrides replace the standard library's type for these extensions
var mimeOverrides = map[string]string{
	".mjs":  "application/javascript",
	".wasm": "application/wasm",
}

// Recorder receives one record per served request
type Recorder interface {
	Record(ctx context.Context, rec *models.AccessRecord) error
}

// NewStaticHandler serves the files under root with cross-origin isolation
// enabled. recorder may be nil.
func NewStaticHandler(root string, recorder Recorder) http.Handler {
	fs := http.FileServer(http.Dir(root))
	return LogRequests(IsolationHeaders(withMIMEOverrides(fs)), recorder)
}

// IsolationHeaders sets COOP/COEP on every response passing through next
func IsolationHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerOpenerPolicy, "same-origin")
		w.Header().Set(headerEmbedderPolicy, "require-corp")
		next.ServeHTTP(w, r)
	})
}

// ContentTypeFor returns the override type for name, if any
func ContentTypeFor(name string) (string, bool) {
	ctype, ok := mimeOverrides[strings.ToLower(path.Ext(name))]
	return ctype, ok
}

func withMIMEOverrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// FileServer keeps a preset Content-Type; error responses replace it.
		if ctype, ok := ContentTypeFor(r.URL.Path); ok {
			w.Header().Set("Content-Type", ctype)
		}
		next.ServeHTTP(w, r)
	})
}
