// Package router wires the HTTP handlers onto a chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/brainscroller/site/internal/handler"
	"github.com/brainscroller/site/internal/metrics"
)

// Options carries the handlers and cross-cutting settings for Setup.
type Options struct {
	Health   *handler.Handler
	Contact  *handler.ContactHandler
	Legal    *handler.LegalHandler
	AppLinks *handler.AppLinksHandler

	CORSOrigins       []string
	ContactRatePerMin int // 0 disables rate limiting on POST /api/contact
	MetricsEnabled    bool
}

// Setup creates and configures the HTTP router.
func Setup(opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.RequestLogger)
	r.Use(metrics.InstrumentHandler)
	r.Use(chimiddleware.Recoverer)
	r.Use(handler.SecurityHeaders)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", opts.Health.Health)
		api.Get("/legal/{type}", opts.Legal.Legal)

		api.Group(func(g chi.Router) {
			if opts.ContactRatePerMin > 0 {
				g.Use(handler.RateLimit(opts.ContactRatePerMin))
			}
			g.Post("/contact", opts.Contact.Submit)
		})
	})

	r.Get("/download/{platform}", opts.AppLinks.Download)

	if opts.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return r
}
