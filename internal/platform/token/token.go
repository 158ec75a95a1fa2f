package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerrors "adoption-platform/pkg/domain-errors"
)

// Claims es exactamente lo que viaja en el token de sesión:
// sujeto, rol y vencimiento. Nada más.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service firma y verifica tokens de sesión HS256.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Generate emite un token firmado para el usuario indicado.
func (s *Service) Generate(userID, role string) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(s.signingKey)
}

// Validate verifica firma y vencimiento y devuelve los claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Token expirado.")
		}
		return nil, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Token inválido.")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Token inválido.")
	}
	return claims, nil
}
