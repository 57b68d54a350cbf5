package users

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/JaimeStill/elib/pkg/repository"
)

const columns = "id, name, email, password_hash, created_at"

// Repository persists and retrieves user accounts.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

var dbErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
}

type postgres struct {
	db *sql.DB
}

// NewRepository creates a PostgreSQL-backed Repository.
func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	q := `
		INSERT INTO users(id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns

	args := []any{uuid.New(), name, email, passwordHash}

	u, err := repository.QueryOne(ctx, p.db, q, args, scanUser)
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &u, nil
}

func (p *postgres) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q := "SELECT " + columns + " FROM users WHERE id = $1"

	u, err := repository.QueryOne(ctx, p.db, q, []any{id}, scanUser)
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &u, nil
}

func (p *postgres) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := "SELECT " + columns + " FROM users WHERE email = $1"

	u, err := repository.QueryOne(ctx, p.db, q, []any{email}, scanUser)
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &u, nil
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
