// internal/handler/router.go
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/controller"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/service"
)

// Router holds everything the HTTP surface is built from.
type Router struct {
	Logger     *zap.Logger
	Production bool
	Registry   *prometheus.Registry

	LimiterStore limiter.Store
	Rate         limiter.Rate

	AuthService *service.AuthService

	CompanyController *controller.CompanyController
	UserController    *controller.UserController
	ProjectController *controller.ProjectController

	// Ready reports whether backing services are reachable, e.g. a db ping.
	Ready func(ctx context.Context) error
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog(rt.Logger))
	if rt.Registry != nil {
		r.Use(NewMetrics(rt.Registry).Middleware)
	}
	if rt.Production {
		r.Use(SecureHeaders)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	if rt.LimiterStore != nil {
		r.Use(RateLimit(rt.LimiterStore, rt.Rate))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World!"))
	})
	r.Get("/healthz", rt.healthz)
	if rt.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{}))
	}

	authenticate := Authenticate(rt.AuthService, rt.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth/user", func(r chi.Router) {
			r.Post("/login", rt.UserController.Login)
			r.With(authenticate).Get("/logout", rt.UserController.Logout)
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/register", rt.UserController.Register)
			r.With(authenticate, RequireRole(model.RoleDeveloper, rt.Logger)).
				Get("/do-something", rt.UserController.DoSomething)
		})

		r.Route("/company", func(r chi.Router) {
			r.Post("/register", rt.CompanyController.Register)

			r.Route("/project", func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", rt.ProjectController.Register)
				r.Get("/", rt.ProjectController.List)
				r.Get("/{id}", rt.ProjectController.Get)
				r.Put("/{id}", rt.ProjectController.Update)
				r.Delete("/{id}", rt.ProjectController.Delete)
			})
		})
	})

	return r
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	if rt.Ready != nil {
		if err := rt.Ready(r.Context()); err != nil {
			rt.Logger.Warn("health check failed", zap.Error(err))
			controller.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	controller.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
