package api

import (
	"github.com/JaimeStill/elib/internal/assets"
	"github.com/JaimeStill/elib/internal/books"
	"github.com/JaimeStill/elib/internal/users"
)

// assetPrefix is the blob key prefix for book covers and files.
const assetPrefix = "books"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Books books.System
	Users users.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	booksSystem := books.New(
		books.NewRepository(runtime.DB),
		assets.New(runtime.Storage, assetPrefix, runtime.Logger),
		runtime.Logger,
		runtime.Pagination,
	)

	usersSystem := users.New(
		users.NewRepository(runtime.DB),
		runtime.Tokens,
		runtime.Logger,
		runtime.PasswordCost,
	)

	return &Domain{
		Books: booksSystem,
		Users: usersSystem,
	}
}
