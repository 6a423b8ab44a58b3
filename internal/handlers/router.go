package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the storefront on /index.php. Non-empty credentials put
// every path behind HTTP basic auth.
func NewRouter(storefront *Storefront, username, password string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	if username != "" {
		r.Use(middleware.BasicAuth("storefront", map[string]string{username: password}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		redirect(w, r, defaultRoute)
	})
	r.Handle("/index.php", storefront)
	r.Get("/image/catalog/{name}", ServeImage)
	r.NotFound(storefront.NotFound)
	return r
}
