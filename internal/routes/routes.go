// internal/routes/routes.go
package routes

import (
	"time"

	"imagify-backend/internal/handlers"
	"imagify-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Image  *handlers.ImageHandler
	User   *handlers.UserHandler
	Usage  *handlers.UsageHandler
}

type Options struct {
	Logger        *zap.Logger
	AllowedOrigin string
	// JWTSecret enables token auth on /api when set.
	JWTSecret      string
	RequestTimeout time.Duration
}

func SetupRoutes(h *Handlers, opts Options) *chi.Mux {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recoverer(opts.Logger))
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(middleware.CORS(opts.AllowedOrigin))

	r.Get("/", h.Health.HealthCheck)
	r.Get("/health", h.Health.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(middleware.UserAuth(opts.JWTSecret, opts.Logger))
		}

		r.Route("/image", func(r chi.Router) {
			r.Post("/generate-image", h.Image.GenerateImage)
			r.Get("/history", h.Usage.GetHistory)
		})

		r.Get("/user/credits", h.User.GetCredits)
	})

	return r
}
