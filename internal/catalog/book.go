package catalog

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book record in the catalog.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedYear int32     `json:"published_year,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Fields holds the caller-supplied parts of a Book. It is the payload of
// create and update operations; id and timestamps are owned by the store.
type Fields struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear int32
	Genre         string
	Description   string
}

// ListQuery defines filters and pagination for listing books.
type ListQuery struct {
	GenreFilter  string
	AuthorFilter string
	Limit        int
	Offset       int
}
