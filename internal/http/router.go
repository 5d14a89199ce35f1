package router

import (
	"net/http"
	"time"

	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config   Config
	services middlewares.Services
}

func New(config Config, services middlewares.Services) *Router {
	return &Router{config: config, services: services}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		logger.RequestLogger,
		middleware.Recoverer,
		middlewares.ServiceInjectorMiddleware(router.services),
		middlewares.AuthMiddleware().WithExcludedPaths(
			"/api/services",
		).Middleware,
	)

	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", ListServices)
		r.Get("/{id}", GetService)
	})

	r.Route("/api/checkouts", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[openCheckoutRequest]).Post("/", OpenCheckout)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", GetCheckout)
			r.With(middlewares.JSONMiddleware[models.DraftPatch]).Patch("/", UpdateCheckout)
			r.Delete("/", CloseCheckout)
			r.With(middlewares.MultipartMiddleware).Put("/receipt", AttachReceipt)
			r.With(middlewares.IdempotencyMiddleware).Post("/submit", SubmitCheckout)
		})
	})

	r.With(middlewares.MultipartMiddleware).Post("/api/billing/deposits", CreateDeposit)
	r.Get("/api/dashboard", GetDashboard)

	return r
}

func (router *Router) Handler() http.Handler {
	return router.get()
}

func (router *Router) Run() error {
	server := &http.Server{
		Addr:              router.config.Endpoint,
		Handler:           router.get(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
