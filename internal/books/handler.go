package books

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/pkg/handlers"
	"github.com/JaimeStill/elib/pkg/pagination"
	"github.com/JaimeStill/elib/pkg/routes"
)

// Multipart field names for the two file slots.
const (
	FieldCoverImage = "coverImage"
	FieldFile       = "file"
)

var errInvalidID = fmt.Errorf("%w: invalid book id", ErrValidation)

// Handler provides HTTP endpoints for book operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "books"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for book endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/books",
		Tags:   []string{"Books"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/search", Handler: h.Browse, OpenAPI: Spec.Browse},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, Secure: true, OpenAPI: Spec.Create},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update, Secure: true, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Secure: true, OpenAPI: Spec.Delete},
		},
	}
}

// List returns every book.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, books, "Books found successfully.")
}

// Browse returns a page of books using query parameters for pagination and filters.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrValidation, err))
		return
	}
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.Search(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Books found successfully.")
}

// Search accepts a JSON body with pagination and filter criteria and returns a page of books.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed search request", ErrValidation))
		return
	}

	result, err := h.sys.Search(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Books found successfully.")
}

// Find returns a single book by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	book, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, book, "Book found successfully.")
}

// Create processes a multipart form carrying genre, title, description,
// and the coverImage and file slots.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer form.cleanup()

	cmd := CreateCommand{
		Genre:       r.FormValue("genre"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CoverImage:  form.cover,
		File:        form.file,
		PageCount:   form.pageCount,
	}

	book, err := h.sys.Create(r.Context(), cmd, principal.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, book, "Book created successfully.")
}

// Update processes a multipart form in which every field and file slot is optional.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer form.cleanup()

	cmd := UpdateCommand{
		Genre:       formValue(r, "genre"),
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		CoverImage:  form.cover,
		File:        form.file,
		PageCount:   form.pageCount,
	}

	book, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, book, "Book updated successfully.")
}

// Delete removes a book and its assets. Only the book's author may delete it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), id, principal); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, nil, "Book deleted successfully.")
}

type uploadForm struct {
	cover     *Upload
	file      *Upload
	pageCount *int
	paths     []string
}

func (f *uploadForm) cleanup() {
	for _, p := range f.paths {
		os.Remove(p)
	}
}

// parseForm reads the multipart body and spools each present file slot to
// a temporary file. The caller must call cleanup on the result.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (*uploadForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request exceeds %d bytes", ErrValidation, h.maxUploadSize)
		}
		return nil, fmt.Errorf("%w: malformed multipart form", ErrValidation)
	}

	form := &uploadForm{}

	cover, err := spool(r, FieldCoverImage)
	if err != nil {
		return nil, err
	}
	if cover != nil {
		form.cover = cover
		form.paths = append(form.paths, cover.Path)
	}

	file, err := spool(r, FieldFile)
	if err != nil {
		form.cleanup()
		return nil, err
	}
	if file != nil {
		form.file = file
		form.paths = append(form.paths, file.Path)
		form.pageCount = pdfPageCount(h.logger, file.Path)
	}

	return form, nil
}

// spool copies the named multipart file to a temporary path.
// It returns nil when the slot is absent.
func spool(r *http.Request, field string) (*Upload, error) {
	src, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrValidation, field, err)
	}
	defer src.Close()

	return writeTemp(src, header)
}

func writeTemp(src multipart.File, header *multipart.FileHeader) (*Upload, error) {
	dst, err := os.CreateTemp("", "elib-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	return &Upload{
		Path:     dst.Name(),
		Filename: filepath.Base(header.Filename),
	}, nil
}

func pdfPageCount(logger *slog.Logger, path string) *int {
	mtype, err := mimetype.DetectFile(path)
	if err != nil || !mtype.Is("application/pdf") {
		return nil
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}

func formValue(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}
