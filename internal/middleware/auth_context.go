package middleware

import (
	"context"
	"net/http"
	"strings"

	"adoption-platform/internal/platform/httpx"
	domainerrors "adoption-platform/pkg/domain-errors"
)

// Claims es la identidad resuelta de la sesión, disponible en el contexto
// del request para los handlers.
type Claims struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

const adminRole = "admin"

func (c Claims) Admin() bool {
	return c.Role == adminRole
}

// SessionResolver verifica el token de sesión y confirma que el usuario
// referido todavía existe.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (Claims, error)
}

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext extrae el token (Bearer header o cookie "token") y, si resuelve,
// deja los claims en el contexto. No corta el request: cada ruta decide con
// RequireAuth/RequireAdmin si exige identidad.
func AuthContext(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := sessionToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := resolver.ResolveSession(r.Context(), tok)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// RequireAuth responde 401 si el request no trae una sesión válida.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Token no proporcionado o inválido."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin responde 403 si la sesión no es de un administrador.
// Se apila después de RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Token no proporcionado o inválido."))
			return
		}
		if !claims.Admin() {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeForbidden, "El rol "+claims.Role+" no está autorizado para acceder a esta ruta."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}
