package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	pg "adoption-platform/internal/adapters/storage/postgres"
	"adoption-platform/internal/platform/config"
	"adoption-platform/internal/platform/logger"
	"adoption-platform/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.NewFromEnv("adoption-platform")

	opts := router.Options{Cfg: cfg, Log: log}

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("no se pudo conectar a la base de datos", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("sin DB_DSN: usando almacenamiento in-memory (modo dev)", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "env": cfg.Env})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
