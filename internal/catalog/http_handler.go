package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

// HTTPHandler exposes the catalog operations over JSON/HTTP. Response
// shapes mirror the RPC wire contract: business failures ride inside the
// payload with a 200, only internal faults and bad route parameters use
// HTTP status codes.
type HTTPHandler struct {
	svc Catalog
}

func NewHTTPHandler(svc Catalog) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/books", h.CreateBook)
	mux.HandleFunc("GET /v1/books", h.ListBooks)
	mux.HandleFunc("GET /v1/books/all", h.GetAllBooks)
	mux.HandleFunc("GET /v1/books/{id}", h.GetBook)
	mux.HandleFunc("PATCH /v1/books/{id}", h.UpdateBook)
	mux.HandleFunc("DELETE /v1/books/{id}", h.DeleteBook)
}

type bookPayload struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear int32  `json:"published_year"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
}

func (p bookPayload) fields() Fields {
	return Fields{
		Title:         p.Title,
		Author:        p.Author,
		ISBN:          p.ISBN,
		PublishedYear: p.PublishedYear,
		Genre:         p.Genre,
		Description:   p.Description,
	}
}

type updateBookRequest struct {
	Book       bookPayload `json:"book"`
	UpdateMask struct {
		Paths []string `json:"paths"`
	} `json:"update_mask"`
}

type mutationResponse struct {
	Book    *Book  `json:"book,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type getBookResponse struct {
	Book  *Book `json:"book,omitempty"`
	Found bool  `json:"found"`
}

type listBooksResponse struct {
	Books      []Book `json:"books"`
	TotalCount int    `json:"total_count"`
}

// CreateBook handles POST /v1/books.
func (h *HTTPHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var payload bookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, mutationResponse{Success: false, Message: "Invalid request body"})
		return
	}

	res := h.svc.Create(r.Context(), payload.fields())
	writeJSON(w, mutationResponse{Book: res.Book, Success: res.Success, Message: res.Message})
}

// GetBook handles GET /v1/books/{id}.
func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	book, found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Internal error: "+err.Error(), nil)
		return
	}

	resp := getBookResponse{Found: found}
	if found {
		resp.Book = &book
	}
	writeJSON(w, resp)
}

// UpdateBook handles PATCH /v1/books/{id}.
func (h *HTTPHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, mutationResponse{Success: false, Message: "Invalid request body"})
		return
	}

	res := h.svc.Update(r.Context(), id, req.Book.fields(), req.UpdateMask.Paths)
	writeJSON(w, mutationResponse{Book: res.Book, Success: res.Success, Message: res.Message})
}

// DeleteBook handles DELETE /v1/books/{id}.
func (h *HTTPHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res := h.svc.Delete(r.Context(), id)
	writeJSON(w, mutationResponse{Success: res.Success, Message: res.Message})
}

// ListBooks handles GET /v1/books.
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	q := ListQuery{
		GenreFilter:  query.Get("genre_filter"),
		AuthorFilter: query.Get("author_filter"),
		Limit:        limit,
		Offset:       offset,
	}

	books, total, err := h.svc.List(r.Context(), q)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Internal error: "+err.Error(), nil)
		return
	}

	writeJSON(w, listBooksResponse{Books: books, TotalCount: total})
}

// GetAllBooks handles GET /v1/books/all.
func (h *HTTPHandler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, total, err := h.svc.GetAll(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Internal error: "+err.Error(), nil)
		return
	}

	writeJSON(w, listBooksResponse{Books: books, TotalCount: total})
}

// pathID parses the {id} route parameter. A non-numeric id is a transport
// error, not part of the RPC contract, so it gets a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Book id must be an integer", nil)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
