package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/storage"
)

// UserRepository implements storage.UserStore on PostgreSQL.
type UserRepository struct {
	db *sqlx.DB
}

type dbUser struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u dbUser) toDomain() domain.User {
	return domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// NewUserRepository returns a user repository over the given pool.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ByEmail returns the user with the given email or storage.ErrNotFound.
func (r *UserRepository) ByEmail(ctx context.Context, email string) (domain.User, error) {
	var row dbUser
	err := r.db.GetContext(ctx, &row,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user by email: %w", err)
	}

	return row.toDomain(), nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	var row dbUser
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO users (email, password_hash, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, created_at`,
		email, passwordHash, time.Now().UTC(),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return row.toDomain(), nil
}
