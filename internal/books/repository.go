package books

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/elib/pkg/pagination"
	"github.com/JaimeStill/elib/pkg/query"
	"github.com/JaimeStill/elib/pkg/repository"
)

// Repository persists and retrieves book records.
type Repository interface {
	Create(ctx context.Context, rec Record) (*Book, error)
	Find(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Book], error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var dbErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Reference: fmt.Errorf("%w: author does not exist", ErrValidation),
}

// searchTx gives the count and page queries of a search one snapshot.
var searchTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

type postgres struct {
	db *sql.DB
}

// NewRepository creates a PostgreSQL-backed Repository.
func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) Create(ctx context.Context, rec Record) (*Book, error) {
	q := `
		INSERT INTO books(id, title, genre, description, author_id, cover_image, file, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	args := []any{
		uuid.New(),
		rec.Title,
		rec.Genre,
		rec.Description,
		rec.Author,
		rec.CoverImage,
		rec.File,
		rec.PageCount,
	}

	b, err := repository.WithTx(ctx, p.db, nil, func(tx *sql.Tx) (Book, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBook)
	})
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &b, nil
}

func (p *postgres) Find(ctx context.Context, id uuid.UUID) (*Book, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, p.db, q, args, scanBook)
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &b, nil
}

func (p *postgres) List(ctx context.Context) ([]Book, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	books, err := repository.QueryMany(ctx, p.db, q, args, scanBook)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	return books, nil
}

func (p *postgres) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Book], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Genre", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var total int
	books, err := repository.WithTx(ctx, p.db, searchTx, func(tx *sql.Tx) ([]Book, error) {
		n, err := repository.QueryScalar[int](ctx, tx, countSQL, countArgs)
		if err != nil {
			return nil, fmt.Errorf("count books: %w", err)
		}
		total = n

		books, err := repository.QueryMany(ctx, tx, pageSQL, pageArgs, scanBook)
		if err != nil {
			return nil, fmt.Errorf("query books: %w", err)
		}
		return books, nil
	})
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(books, total, page.Page, page.PageSize)
	return &result, nil
}

func (p *postgres) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Book, error) {
	q := `
		UPDATE books SET
			title = COALESCE($2, title),
			genre = COALESCE($3, genre),
			description = COALESCE($4, description),
			cover_image = COALESCE($5, cover_image),
			file = COALESCE($6, file),
			page_count = CASE WHEN $6::text IS NULL THEN page_count ELSE $7 END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + columns

	args := []any{
		id,
		patch.Title,
		patch.Genre,
		patch.Description,
		patch.CoverImage,
		patch.File,
		patch.PageCount,
	}

	b, err := repository.WithTx(ctx, p.db, nil, func(tx *sql.Tx) (Book, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBook)
	})
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &b, nil
}

func (p *postgres) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, p.db, "DELETE FROM books WHERE id = $1", id)
	return dbErrors.Map(err)
}
