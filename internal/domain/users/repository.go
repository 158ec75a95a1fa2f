package users

import (
	"context"

	domainerrors "adoption-platform/pkg/domain-errors"
)

var (
	ErrNotFound   = domainerrors.New(domainerrors.CodeNotFound, "Usuario no encontrado")
	ErrEmailTaken = domainerrors.New(domainerrors.CodeConflict, "El email ya está registrado")
)

type Repository interface {
	// Create falla con ErrEmailTaken si el email ya existe (case-insensitive).
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
