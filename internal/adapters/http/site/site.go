// Package site serves the embedded landing page and its static assets.
package site

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
)

//go:embed public
var publicFS embed.FS

// Error constants.
var (
	ErrServe = errors.New("site serve failed")
)

// FS returns the embedded site rooted at public/.
func FS() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// only possible if the embed directive changes
		panic(errors.Join(ErrServe, err))
	}
	return sub
}

// Register attaches the landing page at / and its assets under /static/.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(http.FS(FS()))
	mux.Handle("/", getOnly(files))
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
