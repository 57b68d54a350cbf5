package books

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/elib/internal/assets"
	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/pkg/pagination"
	"github.com/JaimeStill/elib/pkg/validation"
)

// System defines the public contract for book lifecycle operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Create(ctx context.Context, cmd CreateCommand, author uuid.UUID) (*Book, error)
	Find(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Book], error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID, requester auth.Principal) error
}

type system struct {
	repo       Repository
	assets     assets.Store
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the book System over a repository and an asset store.
func New(
	repo Repository,
	store assets.Store,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &system{
		repo:       repo,
		assets:     store,
		logger:     logger.With("system", "books"),
		pagination: pagination,
	}
}

func (s *system) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, maxUploadSize)
}

func (s *system) Create(ctx context.Context, cmd CreateCommand, author uuid.UUID) (*Book, error) {
	cmd.Genre = strings.TrimSpace(cmd.Genre)
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Description = strings.TrimSpace(cmd.Description)

	if err := validation.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	uploaded, err := s.upload(ctx, cmd.CoverImage, cmd.File)
	if err != nil {
		return nil, err
	}
	cover, file := uploaded[0], uploaded[1]

	book, err := s.repo.Create(ctx, Record{
		Title:       cmd.Title,
		Genre:       cmd.Genre,
		Description: cmd.Description,
		Author:      author,
		CoverImage:  cover.URL,
		File:        file.URL,
		PageCount:   cmd.PageCount,
	})
	if err == nil && book == nil {
		err = errors.New("no record returned")
	}
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, persistenceError(err)
	}

	s.logger.Info("book created", "id", book.ID, "title", book.Title, "author", author)
	return book, nil
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.Find(ctx, id)
}

func (s *system) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (s *system) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Book], error) {
	page.Normalize(s.pagination)
	return s.repo.Search(ctx, page, filters)
}

// Update replaces any supplied assets by uploading the new file, persisting
// its URL, and only then removing the asset it replaced. A failed upload or
// write leaves the stored book and its assets as they were.
func (s *system) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Book, error) {
	if err := normalizeUpdate(&cmd); err != nil {
		return nil, err
	}

	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := Patch{
		Title:       cmd.Title,
		Genre:       cmd.Genre,
		Description: cmd.Description,
	}

	uploaded, err := s.upload(ctx, cmd.CoverImage, cmd.File)
	if err != nil {
		return nil, err
	}

	var stale []string
	if cover := uploaded[0]; cover != nil {
		patch.CoverImage = &cover.URL
		stale = append(stale, current.CoverImage)
	}
	if file := uploaded[1]; file != nil {
		patch.File = &file.URL
		patch.PageCount = cmd.PageCount
		stale = append(stale, current.File)
	}

	book, err := s.repo.Update(ctx, id, patch)
	if err == nil && book == nil {
		err = errors.New("no record returned")
	}
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, persistenceError(err)
	}

	for _, url := range stale {
		if err := s.assets.Remove(ctx, url); err != nil {
			s.logger.Warn("stale asset removal failed", "book", id, "url", url, "error", err)
		}
	}

	s.logger.Info("book updated", "id", id, "replaced_assets", len(stale))
	return book, nil
}

// Delete removes both assets of a book owned by requester and then the
// record itself. The record is kept if either removal fails so that it
// never points at a half-deleted pair.
func (s *system) Delete(ctx context.Context, id uuid.UUID, requester auth.Principal) error {
	book, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}

	if book.Author != requester.ID {
		return ErrForbidden
	}

	for _, url := range []string{book.CoverImage, book.File} {
		if err := s.assets.Remove(ctx, url); err != nil {
			return fmt.Errorf("%w: remove %s: %w", ErrUpload, url, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceError(err)
	}

	s.logger.Info("book deleted", "id", id, "requester", requester.ID)
	return nil
}

// upload stores every non-nil slot concurrently. The result is aligned with
// slots, holding nil for absent ones. If any upload fails, the ones that
// succeeded are removed before ErrUpload is returned.
func (s *system) upload(ctx context.Context, slots ...*Upload) ([]*assets.Asset, error) {
	results := make([]*assets.Asset, len(slots))

	var g errgroup.Group
	for i, slot := range slots {
		if slot == nil {
			continue
		}
		g.Go(func() error {
			asset, err := s.assets.Upload(ctx, slot.Path)
			if err != nil {
				return fmt.Errorf("%s: %w", slot.Filename, err)
			}
			if asset == nil {
				return fmt.Errorf("%s: no asset returned", slot.Filename)
			}
			results[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.discard(ctx, results...)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return results, nil
}

// discard is the compensating removal for assets that were uploaded by an
// operation that did not complete.
func (s *system) discard(ctx context.Context, uploaded ...*assets.Asset) {
	for _, a := range uploaded {
		if a == nil {
			continue
		}
		if err := s.assets.Remove(ctx, a.URL); err != nil {
			s.logger.Warn("compensating asset removal failed", "url", a.URL, "error", err)
		}
	}
}

func normalizeUpdate(cmd *UpdateCommand) error {
	fields := []struct {
		name  string
		value **string
	}{
		{"genre", &cmd.Genre},
		{"title", &cmd.Title},
		{"description", &cmd.Description},
	}

	for _, f := range fields {
		if *f.value == nil {
			continue
		}
		v := strings.TrimSpace(**f.value)
		if v == "" {
			return fmt.Errorf("%w: %s must not be blank", ErrValidation, f.name)
		}
		*f.value = &v
	}

	if err := validation.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func persistenceError(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
