package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domainerrors "adoption-platform/pkg/domain-errors"
)

// Hash genera el hash bcrypt de una contraseña en texto plano.
func Hash(plain string) (string, error) {
	if len(plain) < 6 {
		return "", domainerrors.New(domainerrors.CodeValidation, "La contraseña debe tener al menos 6 caracteres")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.New(domainerrors.CodeValidation, "La contraseña es demasiado larga")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compara una contraseña en texto plano contra su hash bcrypt.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
