package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adoption-platform/internal/middleware"
	"adoption-platform/internal/platform/httpx"
	domainerrors "adoption-platform/pkg/domain-errors"
)

// CookieOptions controla cómo se entrega la cookie de sesión "token".
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func RegisterRoutes(r chi.Router, svc *Service, cookies CookieOptions) {
	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, cookies))
		ar.Post("/login", loginHandler(svc, cookies))

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)
			pr.Get("/me", meHandler(svc))
			pr.Post("/logout", logoutHandler(cookies))
		})
	})
}

// El decode a struct tipado descarta cualquier campo extra del body,
// incluido un "role" que el cliente intente colar.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(svc *Service, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		u, tok, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		setSessionCookie(w, tok, cookies)
		httpx.Session(w, http.StatusCreated, tok, u.Public())
	}
}

func loginHandler(svc *Service, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		u, tok, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		setSessionCookie(w, tok, cookies)
		httpx.Session(w, http.StatusOK, tok, u.Public())
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		httpx.Data(w, http.StatusOK, u.Public())
	}
}

func logoutHandler(cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Sesión stateless: cerrar sesión = expirar la cookie del cliente.
		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    "none",
			Path:     "/",
			Expires:  time.Now().Add(10 * time.Second),
			HttpOnly: true,
			Secure:   cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		httpx.Message(w, http.StatusOK, "Sesión cerrada correctamente")
	}
}

func setSessionCookie(w http.ResponseWriter, tok string, cookies CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tok,
		Path:     "/",
		Expires:  time.Now().Add(cookies.TTL),
		HttpOnly: true,
		Secure:   cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
