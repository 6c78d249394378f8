package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/bloglist/internal/auth"
	"github.com/crucial707/bloglist/internal/config"
	"github.com/crucial707/bloglist/internal/handlers"
	mw "github.com/crucial707/bloglist/internal/middleware"
	"github.com/crucial707/bloglist/internal/repo"
)

// newRouter wires repos, handlers, and middleware into the full API router.
// Kept separate from main so integration tests can build the stack against a
// mock database.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpireHours)

	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	userH := &handlers.UserHandler{Repo: userRepo, Audit: auditRepo}
	postH := &handlers.PostHandler{Repo: postRepo, Users: userRepo, Audit: auditRepo}
	authH := &handlers.AuthHandler{Users: userRepo, Tokens: tokens}
	statsH := &handlers.StatsHandler{Posts: postRepo}
	auditH := &handlers.AuditHandler{Repo: auditRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLog)
	r.Use(mw.Recoverer)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := mw.AuthRateLimiter()

	// Public
	r.With(authLimiter.Middleware).Post("/auth/login", authH.Login)
	r.With(authLimiter.Middleware).Post("/users", userH.CreateUser)
	r.Get("/users", userH.ListUsers)
	r.Get("/users/{id}", userH.GetUser)
	r.Get("/posts", postH.ListPosts)
	r.Get("/posts/{id}", postH.GetPost)
	r.Get("/stats", statsH.GetStats)

	// Token required
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireToken(tokens))
		r.Post("/posts", postH.CreatePost)
		r.Put("/posts/{id}", postH.UpdatePost)
		r.Delete("/posts/{id}", postH.DeletePost)
		r.Put("/users/{id}", userH.UpdateUser)
		r.Delete("/users/{id}", userH.DeleteUser)
		r.Get("/audit", auditH.ListAudit)
	})

	return r
}
