package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (User, error)
	List(ctx context.Context, page Pagination) ([]User, error)
}

// User represents a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterParams contains registration input.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}
