package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// PostgresUserStore implements the UserStore interface on top of PostgreSQL
type PostgresUserStore struct {
	db *bun.DB
}

// NewPostgresUserStore opens a pooled connection and creates a new user store instance
func NewPostgresUserStore(dsn string, maxConnections int) *PostgresUserStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	return &PostgresUserStore{
		db: bun.NewDB(sqldb, pgdialect.New()),
	}
}

// EnsureSchema creates the users table if it does not exist yet
func (s *PostgresUserStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*UserSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return NewUserStorageError("ensure_schema", err)
	}
	return nil
}

// GetUser returns the user with the given id
func (s *PostgresUserStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, NewUserStorageError("get_user", err)
	}
	return UserSchemaToUser(schema), nil
}

// CreateUser inserts a new user, assigning a fresh identifier
func (s *PostgresUserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	created := *user
	created.ID = uuid.New()

	schema := UserToUserSchema(&created)
	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, NewUserStorageError("create_user", err)
	}

	return UserSchemaToUser(schema), nil
}

// UpdateUser overwrites an existing user in place
func (s *PostgresUserStore) UpdateUser(ctx context.Context, user *User) error {
	res, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("id = ?", user.ID).
		Set("first_name = ?", user.FirstName).
		Set("last_name = ?", user.LastName).
		Set("updated_at = ?", time.Now().UTC()).
		Exec(ctx)
	if err != nil {
		return NewUserStorageError("update_user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return NewUserStorageError("update_user", err)
	}
	if affected == 0 {
		return NewUserNotFoundError(user.ID)
	}
	return nil
}

// UpsertUser inserts or overwrites the user under its given id in a single
// statement, so the existence check and the write cannot race. The xmax
// system column is zero only for freshly inserted rows, which is how the
// insert case is detected.
func (s *PostgresUserStore) UpsertUser(ctx context.Context, user *User) (bool, error) {
	schema := UserToUserSchema(user)

	var inserted bool
	_, err := s.db.NewInsert().
		Model(&schema).
		On("CONFLICT (id) DO UPDATE").
		Set("first_name = EXCLUDED.first_name").
		Set("last_name = EXCLUDED.last_name").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("(xmax = 0)").
		Exec(ctx, &inserted)
	if err != nil {
		return false, NewUserStorageError("upsert_user", err)
	}
	return inserted, nil
}

// DeleteUser removes the user with the given id
func (s *PostgresUserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return NewUserStorageError("delete_user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return NewUserStorageError("delete_user", err)
	}
	if affected == 0 {
		return NewUserNotFoundError(id)
	}
	return nil
}

// ListUsers returns one page of users in insertion order plus the total count
func (s *PostgresUserStore) ListUsers(ctx context.Context, pageNumber, pageSize int) (*UserPage, error) {
	var schemas []UserSchema
	total, err := s.db.NewSelect().
		Model(&schemas).
		Order("created_at ASC").
		Order("id ASC").
		Limit(pageSize).
		Offset((pageNumber - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, NewUserStorageError("list_users", err)
	}

	page := &UserPage{
		Users:       make([]User, 0, len(schemas)),
		TotalCount:  total,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages(total, pageSize),
	}
	for i := range schemas {
		page.Users = append(page.Users, *UserSchemaToUser(schemas[i]))
	}
	return page, nil
}

// Ping verifies database connectivity
func (s *PostgresUserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool
func (s *PostgresUserStore) Close() error {
	return s.db.Close()
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Helper conversion functions
func UserSchemaToUser(schema UserSchema) *User {
	return &User{
		ID:        schema.ID,
		FirstName: schema.FirstName,
		LastName:  schema.LastName,
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
	}
}

func UserToUserSchema(user *User) UserSchema {
	return UserSchema{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
