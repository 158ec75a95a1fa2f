package config

import (
	"os"
	"strconv"
	"time"
)

// Config agrupa toda la configuración del proceso.
// Se construye una sola vez en main y se inyecta; nada lee env después.
type Config struct {
	Addr        string
	DatabaseDSN string

	JWTSecret  string
	SessionTTL time.Duration

	CORSOrigin string

	// Env controla detalles como el flag Secure de la cookie de sesión.
	Env string
}

func (c Config) Production() bool {
	return c.Env == "production"
}

// FromEnv arma la Config desde variables de entorno para que main quede liviano.
// - PORT (default 8080)
// - DB_DSN (vacío => repos in-memory, modo dev)
// - JWT_SECRET (default solo para dev)
// - JWT_EXPIRE_DAYS (default 7)
// - CORS_ORIGIN (default http://localhost:3000)
// - APP_ENV (development|production)
func FromEnv() Config {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}

	days := 7
	if v := os.Getenv("JWT_EXPIRE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return Config{
		Addr:        addr,
		DatabaseDSN: os.Getenv("DB_DSN"),
		JWTSecret:   secret,
		SessionTTL:  time.Duration(days) * 24 * time.Hour,
		CORSOrigin:  origin,
		Env:         env,
	}
}
