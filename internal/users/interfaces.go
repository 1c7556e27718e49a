package users

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	// UpsertUser inserts the user when the id is unseen or overwrites the
	// existing record, atomically. It reports whether an insert happened.
	UpsertUser(ctx context.Context, user *User) (bool, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, pageNumber, pageSize int) (*UserPage, error)
	Ping(ctx context.Context) error
	Close() error
}

// UserService defines the interface for user service operations
type UserService interface {
	UserStore
}
