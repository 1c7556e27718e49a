package users

import (
	"context"

	"github.com/google/uuid"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// GetUser returns the user with the given id
func (s *UserServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, NewInvalidArgumentError("user id is required")
	}
	return s.store.GetUser(ctx, id)
}

// CreateUser creates a new user with a store-assigned identifier
func (s *UserServiceImpl) CreateUser(ctx context.Context, user *User) (*User, error) {
	return s.store.CreateUser(ctx, user)
}

// UpdateUser overwrites an existing user
func (s *UserServiceImpl) UpdateUser(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		return NewInvalidArgumentError("user id is required")
	}
	return s.store.UpdateUser(ctx, user)
}

// UpsertUser inserts or overwrites the user under its given id and reports
// whether an insert happened
func (s *UserServiceImpl) UpsertUser(ctx context.Context, user *User) (bool, error) {
	if user.ID == uuid.Nil {
		return false, NewInvalidArgumentError("user id is required")
	}
	return s.store.UpsertUser(ctx, user)
}

// DeleteUser removes a user
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return NewInvalidArgumentError("user id is required")
	}
	return s.store.DeleteUser(ctx, id)
}

// ListUsers returns one page of users
func (s *UserServiceImpl) ListUsers(ctx context.Context, pageNumber, pageSize int) (*UserPage, error) {
	return s.store.ListUsers(ctx, pageNumber, pageSize)
}

// Ping verifies the backing store is reachable
func (s *UserServiceImpl) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close releases the backing store
func (s *UserServiceImpl) Close() error {
	return s.store.Close()
}
