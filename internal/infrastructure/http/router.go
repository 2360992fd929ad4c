package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/domain"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/handlers"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TodosHandler    *handlers.TodosHandler
	RequireJWT      func(http.Handler) http.Handler // Bearer access token
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	LoginRateLimit  func(http.Handler) http.Handler // POST /auth only
	Metrics         bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}
	loginLimit := cfg.LoginRateLimit
	if loginLimit == nil {
		loginLimit = func(next http.Handler) http.Handler { return next }
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/", handlers.Index)
	r.Get("/index", handlers.Index)
	r.Get("/index.html", handlers.Index)
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/", cfg.AuthHandler.Login)
		r.Get("/refresh", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.With(cfg.RequireJWT).Get("/me", cfg.AuthHandler.Me)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", cfg.UsersHandler.Create)
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Patch("/", cfg.UsersHandler.Update)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Get("/", cfg.UsersHandler.List)
				r.Delete("/", cfg.UsersHandler.Delete)
			})
		})
	})

	r.Route("/myprojects", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.ProjectsHandler.List)
		r.Post("/", cfg.ProjectsHandler.Create)
		r.Patch("/{projectId}", cfg.ProjectsHandler.Update)
		r.Delete("/{projectId}", cfg.ProjectsHandler.Delete)
	})

	r.Route("/mytodos", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.TodosHandler.List)
		r.Post("/", cfg.TodosHandler.Create)
		r.Get("/{todoId}", cfg.TodosHandler.Get)
		r.Patch("/{todoId}", cfg.TodosHandler.Update)
		r.Delete("/{todoId}", cfg.TodosHandler.Delete)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("origin", r.Header.Get("Origin")).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
