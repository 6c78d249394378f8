package main

import (
	"log"
	"log/slog"
	"os"

	"net/http"

	"github.com/joho/godotenv"

	"github.com/crucial707/bloglist/internal/config"
	"github.com/crucial707/bloglist/internal/db"
	"github.com/crucial707/bloglist/internal/repo"
	"github.com/crucial707/bloglist/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	slog.Info("connected to database")

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Background metrics refresh
	cron := scheduler.Run(repo.NewPostRepo(database))
	defer cron.Stop()

	r := newRouter(database, cfg)

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "port", cfg.Port)
		err = http.ListenAndServeTLS(":"+cfg.Port, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "port", cfg.Port)
		err = http.ListenAndServe(":"+cfg.Port, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// setupLogger installs the default slog handler, JSON or text per LOG_FORMAT.
func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
