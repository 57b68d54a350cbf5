package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/elib/pkg/repository"
)

var (
	errBookNotFound   = errors.New("book not found")
	errBookDuplicate  = errors.New("book already exists")
	errUnknownAuthor  = errors.New("author does not exist")
	bookErrors        = repository.Errors{NotFound: errBookNotFound, Duplicate: errBookDuplicate, Reference: errUnknownAuthor}
	partialBookErrors = repository.Errors{Duplicate: errBookDuplicate}
)

func TestErrorsMap(t *testing.T) {
	passthrough := errors.New("connection reset")
	fkViolation := &pgconn.PgError{Code: "23503"}
	checkViolation := &pgconn.PgError{Code: "23514"}

	tests := []struct {
		name   string
		errors repository.Errors
		err    error
		want   error
	}{
		{"nil", bookErrors, nil, nil},
		{"no rows", bookErrors, sql.ErrNoRows, errBookNotFound},
		{"wrapped no rows", bookErrors, fmt.Errorf("scan book: %w", sql.ErrNoRows), errBookNotFound},
		{"unique violation", bookErrors, &pgconn.PgError{Code: "23505"}, errBookDuplicate},
		{"wrapped unique violation", bookErrors, fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), errBookDuplicate},
		{"foreign key violation", bookErrors, fkViolation, errUnknownAuthor},
		{"unmapped constraint", bookErrors, checkViolation, checkViolation},
		{"other", bookErrors, passthrough, passthrough},
		{"no rows without sentinel", partialBookErrors, sql.ErrNoRows, sql.ErrNoRows},
		{"foreign key without sentinel", partialBookErrors, fkViolation, fkViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.errors.Map(tt.err)
			if got != tt.want {
				t.Errorf("Map(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type beginner struct {
	err error
}

func (b beginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, b.err
}

func TestWithTxBeginError(t *testing.T) {
	poolClosed := errors.New("sql: database is closed")
	called := false

	_, err := repository.WithTx(context.Background(), beginner{err: poolClosed}, nil, func(*sql.Tx) (int, error) {
		called = true
		return 1, nil
	})

	if !errors.Is(err, poolClosed) {
		t.Errorf("err = %v, want %v", err, poolClosed)
	}
	if called {
		t.Error("fn should not run when the transaction cannot begin")
	}
}

type result struct {
	rows int64
	err  error
}

func (r result) LastInsertId() (int64, error) { return 0, nil }
func (r result) RowsAffected() (int64, error) { return r.rows, r.err }

type executor struct {
	res   sql.Result
	err   error
	query string
	args  []any
}

func (e *executor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.query = query
	e.args = args
	return e.res, e.err
}

func TestExecExpectOne(t *testing.T) {
	execFailed := errors.New("exec failed")
	countFailed := errors.New("rows affected unsupported")

	tests := []struct {
		name    string
		exec    *executor
		wantErr error
	}{
		{"one row", &executor{res: result{rows: 1}}, nil},
		{"no rows", &executor{res: result{rows: 0}}, sql.ErrNoRows},
		{"exec error", &executor{err: execFailed}, execFailed},
		{"rows affected error", &executor{res: result{err: countFailed}}, countFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repository.ExecExpectOne(context.Background(), tt.exec, "DELETE FROM books WHERE id = $1", "b-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.exec.query != "DELETE FROM books WHERE id = $1" {
				t.Errorf("query = %q", tt.exec.query)
			}
			if len(tt.exec.args) != 1 || tt.exec.args[0] != "b-1" {
				t.Errorf("args = %v", tt.exec.args)
			}
		})
	}
}
