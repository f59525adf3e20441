package catalog

import (
	"time"
)

// Store is the in-memory record store. It owns the id -> Book mapping and
// the id allocator. Ids are allocated strictly increasing and are never
// reused, including after deletion.
//
// Store is not safe for concurrent use on its own: the Service serializes
// every access with a single mutex, since net/http dispatches each request
// on its own goroutine.
type Store struct {
	books  map[int64]Book
	order  []int64
	nextID int64
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		books:  make(map[int64]Book),
		nextID: 1,
		now:    time.Now,
	}
}

// Insert allocates the next id, stamps created_at and updated_at to the
// same instant and stores the record. Returns the stored record.
func (s *Store) Insert(f Fields) Book {
	now := s.now().UTC()
	b := Book{
		ID:            s.nextID,
		Title:         f.Title,
		Author:        f.Author,
		ISBN:          f.ISBN,
		PublishedYear: f.PublishedYear,
		Genre:         f.Genre,
		Description:   f.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.books[b.ID] = b
	s.order = append(s.order, b.ID)
	s.nextID++
	return b
}

// Get returns the record for id, if live.
func (s *Store) Get(id int64) (Book, bool) {
	b, ok := s.books[id]
	return b, ok
}

// Replace swaps the stored record for b.ID wholesale and refreshes
// updated_at. Returns false if the id is not live. Records are replaced as
// values rather than mutated in place, so a caller that bails out before
// Replace leaves the store untouched.
func (s *Store) Replace(b Book) (Book, bool) {
	if _, ok := s.books[b.ID]; !ok {
		return Book{}, false
	}
	b.UpdatedAt = s.now().UTC()
	s.books[b.ID] = b
	return b, true
}

// Remove deletes the record for id. The id stays retired: the allocator is
// never rewound.
func (s *Store) Remove(id int64) bool {
	if _, ok := s.books[id]; !ok {
		return false
	}
	delete(s.books, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a snapshot of the live records in insertion order.
func (s *Store) All() []Book {
	books := make([]Book, 0, len(s.books))
	for _, id := range s.order {
		books = append(books, s.books[id])
	}
	return books
}

// ISBNConflict reports whether some live record other than excludeID has
// this non-empty isbn. The match is exact and case-sensitive, unlike the
// list filters.
func (s *Store) ISBNConflict(isbn string, excludeID int64) bool {
	if isbn == "" {
		return false
	}
	for id, b := range s.books {
		if id != excludeID && b.ISBN == isbn {
			return true
		}
	}
	return false
}
