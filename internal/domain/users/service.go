package users

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"adoption-platform/internal/platform/password"
	"adoption-platform/internal/platform/token"
	domainerrors "adoption-platform/pkg/domain-errors"
)

var errInvalidCredentials = domainerrors.New(domainerrors.CodeInvalidCredentials, "Credenciales inválidas")

// mismo patrón que usa el resto del sistema para emails
var emailRe = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

type Service struct {
	repo   Repository
	tokens *token.Service
	now    func() time.Time
}

func NewService(repo Repository, tokens *token.Service) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register crea la cuenta con rol user siempre, sin importar qué mande el
// cliente, y devuelve el usuario junto con su token de sesión.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" {
		return User{}, "", domainerrors.New(domainerrors.CodeValidation, "Por favor proporcione nombre, email y contraseña")
	}
	if !emailRe.MatchString(email) {
		return User{}, "", domainerrors.New(domainerrors.CodeValidation, "Por favor ingrese un email válido")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return User{}, "", err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// El índice único de email es el respaldo real ante registros concurrentes.
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	tok, err := s.tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// Login devuelve el mismo error para email desconocido y contraseña
// incorrecta, para no permitir enumerar usuarios.
func (s *Service) Login(ctx context.Context, email, plain string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		return User{}, "", domainerrors.New(domainerrors.CodeValidation, "Por favor proporcione email y contraseña")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", errInvalidCredentials
		}
		return User{}, "", err
	}

	if !password.Verify(plain, u.PasswordHash) {
		return User{}, "", errInvalidCredentials
	}

	tok, err := s.tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// ResolveSession verifica el token y confirma que el usuario aún existe.
func (s *Service) ResolveSession(ctx context.Context, tokenString string) (User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return User{}, err
	}

	u, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, domainerrors.New(domainerrors.CodeUnauthorized, "No autorizado. Usuario no encontrado.")
		}
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}
