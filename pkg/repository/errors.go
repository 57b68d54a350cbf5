package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes that carry domain meaning.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Errors names the sentinel a domain returns for each class of database failure.
// A nil field leaves that class of error untranslated.
type Errors struct {
	NotFound  error
	Duplicate error
	Reference error
}

// Map translates err into the domain's sentinel for its failure class.
// Missing rows become NotFound, unique violations become Duplicate, and
// foreign key violations become Reference. Other errors pass through unchanged.
func (e Errors) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && e.NotFound != nil {
		return e.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation && e.Duplicate != nil:
		return e.Duplicate
	case pgErr.Code == pgForeignKeyViolation && e.Reference != nil:
		return e.Reference
	default:
		return err
	}
}
