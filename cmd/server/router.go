package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/phrazzld/memos-api/internal/api"
	apiMiddleware "github.com/phrazzld/memos-api/internal/api/middleware"
	"github.com/phrazzld/memos-api/internal/validation"
)

const corsMaxAgeSeconds = 300

// setupRouter creates the router with its middleware stack and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         corsMaxAgeSeconds,
	}))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	healthHandler := api.NewHealthHandler(app.memoStore)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	memoHandler := api.NewMemoHandler(app.memoService, validation.ListLimits{
		Default: app.config.API.DefaultLimit,
		Max:     app.config.API.MaxLimit,
	}, app.logger)

	r.Group(func(r chi.Router) {
		if perMinute := app.config.API.RateLimitPerMinute; perMinute > 0 {
			r.Use(httprate.Limit(
				perMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(api.RateLimited),
			))
		}
		r.Use(apiMiddleware.MaxBodySize(app.config.API.MaxRequestSize))

		r.Route("/api/v1/memos", memoHandler.Routes)
	})

	return r
}
