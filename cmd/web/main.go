package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parvez-irfan/BlogSite/internal/config"
	"github.com/parvez-irfan/BlogSite/internal/content"
	"github.com/parvez-irfan/BlogSite/internal/db"
	"github.com/parvez-irfan/BlogSite/internal/handlers"
	"github.com/parvez-irfan/BlogSite/internal/middleware"
	"github.com/parvez-irfan/BlogSite/internal/repo"
	"github.com/parvez-irfan/BlogSite/internal/sanitize"
	"github.com/parvez-irfan/BlogSite/internal/scheduler"
	"github.com/parvez-irfan/BlogSite/internal/session"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogging(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.SessionSecret == "supersecretkey" {
		log.Fatal("SESSION_SECRET must be set when ENV=prod")
	}

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Apply migrations
	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wiring
	userRepo := repo.NewUserRepo(database)
	postRepo := repo.NewPostRepo(database)
	commentRepo := repo.NewCommentRepo(database)
	auditRepo := repo.NewAuditRepo(database)

	sessions := session.NewManager(
		cfg.SessionSecret,
		time.Duration(cfg.SessionExpireHours)*time.Hour,
		cfg.CookieSecure,
	)

	web := &handlers.Web{
		Users:    userRepo,
		Posts:    postRepo,
		Comments: commentRepo,
		Accounts: content.NewAccounts(database),
		Pipeline: content.NewPipeline(database, sanitize.New()),
		Sessions: sessions,
	}

	// Nightly audit log retention
	go scheduler.Run(auditRepo, cfg.AuditRetentionDays)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.CurrentUser(sessions, userRepo))

	r.NotFound(web.NotFound)

	// Health and metrics (no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	// Public
	r.Get("/", web.Index)
	r.Get("/post/{id}", web.ShowPost)
	r.Get("/about", web.About)
	r.Get("/contact", web.Contact)

	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Get("/register", web.RegisterForm)
		r.Post("/register", web.RegisterSubmit)
		r.Get("/login", web.LoginForm)
		r.Post("/login", web.LoginSubmit)
	})

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/logout", web.Logout)
		r.Post("/post/{id}/comments", web.SubmitComment)
		r.Get("/new-post", web.NewPostForm)
		r.Post("/new-post", web.CreatePost)
		r.Get("/edit-post/{id}", web.EditPostForm)
		r.Post("/edit-post/{id}", web.UpdatePost)
		r.Post("/post/{id}/delete", web.DeletePost)
	})

	// Start server LAST
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
