package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/shoe-store/internal/domain/user"
	"github.com/jmoiron/sqlx"
)

// PostgresUserStore implements user.Store on PostgreSQL.
type PostgresUserStore struct {
	db *sqlx.DB
}

func NewPostgresUserStore(db *sqlx.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at)
		VALUES (:id, :username, :email, :password_hash, :is_active, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, query, u); err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	query := `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM users WHERE username = $1`
	if err := s.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
