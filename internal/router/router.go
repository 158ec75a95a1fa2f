package router

import (
	"context"
	"database/sql"
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "adoption-platform/internal/adapters/storage/memory"
	pg "adoption-platform/internal/adapters/storage/postgres"
	"adoption-platform/internal/domain/animals"
	"adoption-platform/internal/domain/applications"
	"adoption-platform/internal/domain/users"
	"adoption-platform/internal/middleware"
	"adoption-platform/internal/platform/config"
	"adoption-platform/internal/platform/httpx"
	"adoption-platform/internal/platform/logger"
	"adoption-platform/internal/platform/token"
)

//go:embed swagger.json
var swaggerDoc []byte

type Options struct {
	Cfg config.Config
	Log logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory (modo dev/tests).
	DB *sql.DB

	// Overrides de repos para tests; nil => según DB.
	Users        users.Repository
	Animals      animals.Repository
	Applications applications.Repository
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Log != nil {
		r.Use(middleware.RequestLogger(opts.Log))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.Cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userRepo := opts.Users
	animalRepo := opts.Animals
	appRepo := opts.Applications

	if opts.DB != nil {
		if userRepo == nil {
			userRepo = pg.NewUsersRepo(opts.DB)
		}
		if animalRepo == nil {
			animalRepo = pg.NewAnimalsRepo(opts.DB)
		}
		if appRepo == nil {
			appRepo = pg.NewApplicationsRepo(opts.DB)
		}
	} else {
		if userRepo == nil {
			userRepo = mem.NewUsersRepo()
		}
		if animalRepo == nil {
			animalRepo = mem.NewAnimalsRepo()
		}
		if appRepo == nil {
			appRepo = mem.NewApplicationsRepo()
		}
	}

	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Error})
	}

	// Services por módulo
	tokens := token.NewService(opts.Cfg.JWTSecret, opts.Cfg.SessionTTL)
	usersSvc := users.NewService(userRepo, tokens)
	animalsSvc := animals.NewService(animalRepo)
	appsSvc := applications.NewService(appRepo, animalsSvc, usersSvc, log)

	r.Use(middleware.AuthContext(sessionResolver{usersSvc}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(swaggerDoc)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, users.CookieOptions{
		TTL:    opts.Cfg.SessionTTL,
		Secure: opts.Cfg.Production(),
	})
	animals.RegisterRoutes(r, animalsSvc)
	applications.RegisterRoutes(r, appsSvc)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusNotFound, httpx.Envelope{
			Success: false,
			Message: "Ruta " + r.URL.Path + " no encontrada",
		})
	})

	return r
}

// sessionResolver adapta users.Service a lo que espera el middleware.
type sessionResolver struct {
	users *users.Service
}

func (s sessionResolver) ResolveSession(ctx context.Context, tok string) (middleware.Claims, error) {
	u, err := s.users.ResolveSession(ctx, tok)
	if err != nil {
		return middleware.Claims{}, err
	}
	return middleware.Claims{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
	}, nil
}
