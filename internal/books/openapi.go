package books

import "github.com/JaimeStill/elib/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Browse *openapi.Operation
	Search *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Spec holds the OpenAPI operations for book endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List books",
		Description: "Returns every book, newest first.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Books found", &openapi.Schema{
				Type:  "array",
				Items: openapi.SchemaRef("Book"),
			}),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Browse: &openapi.Operation{
		Summary:     "Search books by query string",
		Description: "Query-string form of the search endpoint.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches title, genre, or description", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields, prefix - for descending", false),
			openapi.QueryParam("genre", "string", "Exact genre", false),
			openapi.QueryParam("title", "string", "Title substring", false),
			openapi.QueryParam("author", "string", "Author UUID", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of books", openapi.SchemaRef("BookPage")),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search books",
		Description: "Returns a page of books matching the search text and filters.",
		RequestBody: openapi.RequestBodyJSON("BookSearchRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of books", openapi.SchemaRef("BookPage")),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find book",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Book UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Book found", openapi.SchemaRef("Book")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create book",
		Description: "Uploads the cover image and book file and stores a new book authored by the caller.",
		RequestBody: openapi.RequestBodyMultipart(openapi.SchemaRef("CreateBookForm"), true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Book created", openapi.SchemaRef("Book")),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update book",
		Description: "Changes any supplied text field. A supplied file slot replaces the stored asset.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Book UUID")},
		RequestBody: openapi.RequestBodyMultipart(openapi.SchemaRef("UpdateBookForm"), true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Book updated", openapi.SchemaRef("Book")),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete book",
		Description: "Removes the book's assets and then the book. Only the author may delete a book.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Book UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Book deleted", &openapi.Schema{Type: "null"}),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("Internal"),
		},
	},
}

// Schemas returns the component schemas referenced by book operations.
func (spec) Schemas() map[string]*openapi.Schema {
	binary := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Format: "binary", Description: desc}
	}

	return map[string]*openapi.Schema{
		"Book": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"title":       {Type: "string"},
				"genre":       {Type: "string"},
				"description": {Type: "string"},
				"author":      {Type: "string", Format: "uuid"},
				"cover_image": {Type: "string", Format: "uri"},
				"file":        {Type: "string", Format: "uri"},
				"page_count":  {Type: "integer", Description: "Page count of PDF book files"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"BookPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Book")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"BookSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer", Example: 1},
				"page_size": {Type: "integer", Example: 20},
				"search":    {Type: "string"},
				"sort":      {Type: "string", Example: "Title,-CreatedAt"},
				"genre":     {Type: "string"},
				"title":     {Type: "string"},
				"author":    {Type: "string", Format: "uuid"},
			},
		},
		"CreateBookForm": {
			Type:     "object",
			Required: []string{"genre", "title", "description", FieldCoverImage, FieldFile},
			Properties: map[string]*openapi.Schema{
				"genre":         {Type: "string"},
				"title":         {Type: "string"},
				"description":   {Type: "string"},
				FieldCoverImage: binary("Cover image"),
				FieldFile:       binary("Book file"),
			},
		},
		"UpdateBookForm": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"genre":         {Type: "string"},
				"title":         {Type: "string"},
				"description":   {Type: "string"},
				FieldCoverImage: binary("Replacement cover image"),
				FieldFile:       binary("Replacement book file"),
			},
		},
	}
}
