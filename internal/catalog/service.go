package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// MutationResult carries the payload-level outcome of a create, update or
// delete. Business failures (missing fields, duplicate ISBN, unknown id)
// land here with Success=false; the call itself still completes normally.
type MutationResult struct {
	Book    *Book
	Success bool
	Message string
}

func failure(format string, args ...any) MutationResult {
	return MutationResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

// fieldSetters maps update-mask path names to field copies from the
// payload onto the record. A masked path is applied unconditionally, even
// when the payload value is empty: the mask means "set this field to this
// value".
var fieldSetters = map[string]func(b *Book, f Fields){
	"title":          func(b *Book, f Fields) { b.Title = f.Title },
	"author":         func(b *Book, f Fields) { b.Author = f.Author },
	"isbn":           func(b *Book, f Fields) { b.ISBN = f.ISBN },
	"published_year": func(b *Book, f Fields) { b.PublishedYear = f.PublishedYear },
	"genre":          func(b *Book, f Fields) { b.Genre = f.Genre },
	"description":    func(b *Book, f Fields) { b.Description = f.Description },
}

// Service implements the book catalog operations over one in-memory
// Store. A single mutex serializes every operation; none of the store
// calls block, so no request can ever observe a half-applied mutation.
type Service struct {
	mu    sync.Mutex
	store *Store
}

// NewService creates a catalog service backed by store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create validates and inserts a new book. Both timestamps are set to the
// same instant by the store.
func (s *Service) Create(ctx context.Context, f Fields) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: creating book title=%q author=%q", f.Title, f.Author)

	if f.Title == "" || f.Author == "" {
		return failure("Title and author are required")
	}
	if f.ISBN != "" && s.store.ISBNConflict(f.ISBN, 0) {
		return failure("Book with ISBN %s already exists", f.ISBN)
	}

	b := s.store.Insert(f)
	log.Printf("catalog: book created id=%d", b.ID)
	return MutationResult{Book: &b, Success: true, Message: "Book created successfully"}
}

// Get returns the book for id, if live. The error return exists for the
// transport's INTERNAL fault channel; the in-memory store never fails.
func (s *Service) Get(ctx context.Context, id int64) (Book, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: getting book id=%d", id)
	b, ok := s.store.Get(id)
	return b, ok, nil
}

// Update applies a partial update to the book for id.
//
// With a non-empty mask, each named path is copied from the payload
// unconditionally; unknown paths are logged and skipped. With an empty
// mask it falls back to legacy behavior: only non-zero payload fields are
// applied, so legacy mode can never clear a field.
//
// In both modes a conflicting ISBN aborts the whole update: the record is
// built as a copy and only swapped into the store once every field has
// passed.
func (s *Service) Update(ctx context.Context, id int64, f Fields, paths []string) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: updating book id=%d paths=%v", id, paths)

	cur, ok := s.store.Get(id)
	if !ok {
		return failure("Book with ID %d not found", id)
	}

	updated := cur

	if len(paths) == 0 {
		log.Printf("catalog: no field mask provided, falling back to non-empty field updates id=%d", id)
		if f.Title != "" {
			updated.Title = f.Title
		}
		if f.Author != "" {
			updated.Author = f.Author
		}
		if f.ISBN != "" {
			if s.store.ISBNConflict(f.ISBN, id) {
				return failure("Book with ISBN %s already exists", f.ISBN)
			}
			updated.ISBN = f.ISBN
		}
		if f.PublishedYear != 0 {
			updated.PublishedYear = f.PublishedYear
		}
		if f.Genre != "" {
			updated.Genre = f.Genre
		}
		if f.Description != "" {
			updated.Description = f.Description
		}
	} else {
		for _, path := range paths {
			setter, ok := fieldSetters[path]
			if !ok {
				log.Printf("catalog: ignoring unknown field path %q id=%d", path, id)
				continue
			}
			if path == "isbn" && s.store.ISBNConflict(f.ISBN, id) {
				return failure("Book with ISBN %s already exists", f.ISBN)
			}
			setter(&updated, f)
		}
	}

	stored, ok := s.store.Replace(updated)
	if !ok {
		return failure("Book with ID %d not found", id)
	}

	log.Printf("catalog: book updated id=%d", id)
	return MutationResult{Book: &stored, Success: true, Message: "Book updated successfully"}
}

// Delete removes the book for id. The id is permanently retired.
func (s *Service) Delete(ctx context.Context, id int64) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: deleting book id=%d", id)

	if !s.store.Remove(id) {
		return failure("Book with ID %d not found", id)
	}
	return MutationResult{Success: true, Message: "Book deleted successfully"}
}

// List returns the live records matching q, in insertion order, plus the
// total count of the filtered view before pagination.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: listing books genre=%q author=%q limit=%d offset=%d",
		q.GenreFilter, q.AuthorFilter, q.Limit, q.Offset)

	books := s.store.All()

	if q.GenreFilter != "" {
		books = filterContains(books, q.GenreFilter, func(b Book) string { return b.Genre })
	}
	if q.AuthorFilter != "" {
		books = filterContains(books, q.AuthorFilter, func(b Book) string { return b.Author })
	}

	total := len(books)

	start := 0
	if q.Offset > 0 {
		start = q.Offset
	}
	end := total
	if q.Limit > 0 {
		end = start + q.Limit
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return books[start:end], total, nil
}

// GetAll returns every live record and its count, with no filtering or
// pagination applied.
func (s *Service) GetAll(ctx context.Context) ([]Book, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("catalog: getting all books")
	books := s.store.All()
	return books, len(books), nil
}

// filterContains keeps the books whose keyed field contains filter as a
// case-insensitive substring.
func filterContains(books []Book, filter string, key func(Book) string) []Book {
	needle := strings.ToLower(filter)
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(key(b)), needle) {
			out = append(out, b)
		}
	}
	return out
}
