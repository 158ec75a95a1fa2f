package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"adoption-platform/internal/domain/users"
)

type usersRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string // email (minúsculas) -> id
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return users.ErrEmailTaken
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}
