package users

import "time"

// Role define los roles soportados.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User representa una cuenta registrada. PasswordHash nunca se serializa
// hacia clientes; las respuestas usan PublicUser.
type User struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas
	PasswordHash string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser es la vista del usuario que sí viaja en respuestas.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
