package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserStore implements UserStore using in-memory storage. It is the
// default backend when no database is configured and the backend used by
// tests. All mutations run under a single lock, which satisfies the
// atomic-upsert requirement.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
	order []uuid.UUID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[uuid.UUID]User),
	}
}

func (s *MemoryUserStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, NewUserNotFoundError(id)
	}
	return &user, nil
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *user
	created.ID = uuid.New()
	s.users[created.ID] = created
	s.order = append(s.order, created.ID)
	return &created, nil
}

func (s *MemoryUserStore) UpdateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[user.ID]
	if !exists {
		return NewUserNotFoundError(user.ID)
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = existing
	return nil
}

func (s *MemoryUserStore) UpsertUser(ctx context.Context, user *User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[user.ID]
	if exists {
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.UpdatedAt = time.Now().UTC()
		s.users[user.ID] = existing
		return false, nil
	}

	s.users[user.ID] = *user
	s.order = append(s.order, user.ID)
	return true, nil
}

func (s *MemoryUserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return NewUserNotFoundError(id)
	}

	delete(s.users, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryUserStore) ListUsers(ctx context.Context, pageNumber, pageSize int) (*UserPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	page := &UserPage{
		Users:       []User{},
		TotalCount:  total,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages(total, pageSize),
	}

	start := (pageNumber - 1) * pageSize
	if start >= total {
		return page, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	for _, id := range s.order[start:end] {
		page.Users = append(page.Users, s.users[id])
	}
	return page, nil
}

func (s *MemoryUserStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryUserStore) Close() error {
	return nil
}
