package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *MemoryUserStore, first, last string) *User {
	t.Helper()
	created, err := store.CreateUser(context.Background(), &User{
		FirstName: first,
		LastName:  last,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return created
}

func TestMemoryUserStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	created := seedUser(t, store, "Ann", "Smith")
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("get returns a copy", func(t *testing.T) {
		got, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.FirstName)

		got.FirstName = "mutated"
		again, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", again.FirstName)
	})

	t.Run("update overwrites name fields", func(t *testing.T) {
		err := store.UpdateUser(ctx, &User{ID: created.ID, FirstName: "Bob", LastName: "Jones"})
		require.NoError(t, err)

		got, err := store.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.FirstName)
		assert.Equal(t, "Jones", got.LastName)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		err := store.UpdateUser(ctx, &User{ID: uuid.New(), FirstName: "x", LastName: "y"})
		assert.True(t, IsNotFound(err))
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		require.NoError(t, store.DeleteUser(ctx, created.ID))

		_, err := store.GetUser(ctx, created.ID)
		assert.True(t, IsNotFound(err))

		err = store.DeleteUser(ctx, created.ID)
		assert.True(t, IsNotFound(err))
	})
}

func TestMemoryUserStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()
	id := uuid.New()

	inserted, err := store.UpsertUser(ctx, &User{ID: id, FirstName: "Ann", LastName: "Smith"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.UpsertUser(ctx, &User{ID: id, FirstName: "Ann", LastName: "Jones"})
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := store.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jones", got.LastName)

	page, err := store.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}

func TestMemoryUserStoreConcurrentUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()
	id := uuid.New()

	const workers = 32
	var inserts int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			inserted, err := store.UpsertUser(ctx, &User{
				ID:        id,
				FirstName: fmt.Sprintf("worker%d", n),
				LastName:  "Smith",
			})
			assert.NoError(t, err)
			if inserted {
				atomic.AddInt64(&inserts, 1)
			}
		}(i)
	}
	wg.Wait()

	// exactly one insert, and exactly one record afterwards
	assert.Equal(t, int64(1), inserts)

	page, err := store.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "Smith", page.Users[0].LastName)
}

func TestMemoryUserStorePaging(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	for i := 0; i < 25; i++ {
		seedUser(t, store, fmt.Sprintf("user%02d", i), "Smith")
	}

	t.Run("full middle page", func(t *testing.T) {
		page, err := store.ListUsers(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 25, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Users, 10)
		assert.Equal(t, "user10", page.Users[0].FirstName)
		assert.True(t, page.HasPrevious())
		assert.True(t, page.HasNext())
	})

	t.Run("short last page", func(t *testing.T) {
		page, err := store.ListUsers(ctx, 3, 10)
		require.NoError(t, err)
		require.Len(t, page.Users, 5)
		assert.True(t, page.HasPrevious())
		assert.False(t, page.HasNext())
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		page, err := store.ListUsers(ctx, 9, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Users)
		assert.Equal(t, 25, page.TotalCount)
	})
}
