// Package books implements the book domain for elib.
// It sequences input validation, asset upload and removal on the remote
// asset host, and persistence of book records for every lifecycle operation.
package books

import (
	"time"

	"github.com/google/uuid"
)

// Book is a persisted catalog item. CoverImage and File are public URLs of
// live assets on the asset host.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Author      uuid.UUID `json:"author"`
	CoverImage  string    `json:"cover_image"`
	File        string    `json:"file"`
	PageCount   *int      `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Upload is one uploaded file slot, spooled to a local path that is valid
// only for the duration of the request.
type Upload struct {
	Path     string `json:"path" validate:"required"`
	Filename string `json:"filename"`
}

// CreateCommand carries the fields and files needed to create a book.
// PageCount is optional and supplied by the caller for PDF files.
type CreateCommand struct {
	Genre       string  `json:"genre" validate:"required,max=100"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required,max=10000"`
	CoverImage  *Upload `json:"coverImage" validate:"required"`
	File        *Upload `json:"file" validate:"required"`
	PageCount   *int    `json:"-"`
}

// UpdateCommand carries an optional subset of fields and files to change.
// Nil fields are left as they are.
type UpdateCommand struct {
	Genre       *string `json:"genre" validate:"omitnil,max=100"`
	Title       *string `json:"title" validate:"omitnil,max=255"`
	Description *string `json:"description" validate:"omitnil,max=10000"`
	CoverImage  *Upload `json:"coverImage"`
	File        *Upload `json:"file"`
	PageCount   *int    `json:"-"`
}

// Record is the full field set persisted for a new book.
type Record struct {
	Title       string
	Genre       string
	Description string
	Author      uuid.UUID
	CoverImage  string
	File        string
	PageCount   *int
}

// Patch is the merged field set written by an update. Nil fields are unchanged.
// PageCount is applied only when File is set.
type Patch struct {
	Title       *string
	Genre       *string
	Description *string
	CoverImage  *string
	File        *string
	PageCount   *int
}
