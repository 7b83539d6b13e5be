package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountStatic serves a board viewer or any other assets from dir under /web/ and
// redirects / there. An empty dir mounts nothing.
func MountStatic(r chi.Router, dir string) {
	if dir == "" {
		return
	}
	fs := http.StripPrefix("/web/", http.FileServer(http.Dir(dir)))
	r.Get("/web/*", fs.ServeHTTP)
	r.Get("/web", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
}
