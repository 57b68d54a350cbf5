package books

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/elib/pkg/query"
	"github.com/JaimeStill/elib/pkg/repository"
)

const columns = "id, title, genre, description, author_id, cover_image, file, page_count, created_at, updated_at"

var projection = query.
	NewProjectionMap("public", "books", "b").
	Project("id", "ID").
	Project("title", "Title").
	Project("genre", "Genre").
	Project("description", "Description").
	Project("author_id", "Author").
	Project("cover_image", "CoverImage").
	Project("file", "File").
	Project("page_count", "PageCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for book searches.
// Genre and Author match exactly; Title matches case-insensitively by substring.
type Filters struct {
	Genre  *string    `json:"genre,omitempty"`
	Title  *string    `json:"title,omitempty"`
	Author *uuid.UUID `json:"author,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Genre", f.Genre).
		WhereContains("Title", f.Title).
		WhereEquals("Author", f.Author)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable author is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if g := values.Get("genre"); g != "" {
		f.Genre = &g
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if a := values.Get("author"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			f.Author = &id
		}
	}

	return f
}

func scanBook(s repository.Scanner) (Book, error) {
	var b Book
	err := s.Scan(
		&b.ID,
		&b.Title,
		&b.Genre,
		&b.Description,
		&b.Author,
		&b.CoverImage,
		&b.File,
		&b.PageCount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
