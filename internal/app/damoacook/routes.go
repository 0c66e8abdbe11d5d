// Package damoacook wires the public API server.
package damoacook

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/damoacook/damoacook-back/docs"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/http/handlers/course/detail"
	"github.com/damoacook/damoacook-back/internal/http/handlers/course/list"
	"github.com/damoacook/damoacook-back/internal/http/handlers/health"
	"github.com/damoacook/damoacook-back/internal/http/handlers/inquiry/create"
	"github.com/damoacook/damoacook-back/internal/http/middlewarectx"
	courseservice "github.com/damoacook/damoacook-back/internal/services/course"
	inquiryservice "github.com/damoacook/damoacook-back/internal/services/inquiry"
)

// Services are the dependencies of the HTTP routes. Inquiry is nil when no
// database is configured and the intake route is then not mounted.
type Services struct {
	Course  *courseservice.Service
	Inquiry *inquiryservice.Service
	Checks  map[string]health.Pinger
}

// RegisterRoutes mounts every route on r.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, loc *time.Location, svc Services) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
	)

	r.Get("/healthz", health.New(logger, svc.Checks).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/lectures/hrd", list.New(logger, svc.Course, cfg.HRDNet, loc).ServeHTTP)
		r.Get("/lectures/hrd/{courseID}", detail.New(logger, svc.Course).ServeHTTP)

		if svc.Inquiry != nil {
			r.Group(func(r chi.Router) {
				limiter := middlewarectx.NewIPRateLimiter(cfg.Inquiry.RateLimit)
				r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
				r.Post("/inquiries", create.New(logger, svc.Inquiry).ServeHTTP)
			})
		}
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
