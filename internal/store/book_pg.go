package store

// Relational persistence for the catalog. The in-memory service does not
// call this layer yet; it backs cmd/migrate, cmd/seed and the readiness
// probe until the catalog is moved onto Postgres.

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = "id, title, author, isbn, published_year, genre, description, created_at, updated_at"

func scanBook(row pgx.Row) (catalog.Book, error) {
	var b catalog.Book
	var isbn, genre, description *string
	var year *int32
	err := row.Scan(&b.ID, &b.Title, &b.Author, &isbn, &year, &genre, &description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return catalog.Book{}, err
	}
	if isbn != nil {
		b.ISBN = *isbn
	}
	if year != nil {
		b.PublishedYear = *year
	}
	if genre != nil {
		b.Genre = *genre
	}
	if description != nil {
		b.Description = *description
	}
	return b, nil
}

// Insert stores a new book and returns it with the database-assigned id
// and timestamps.
func (r *BookPG) Insert(ctx context.Context, f catalog.Fields) (catalog.Book, error) {
	query := `
	INSERT INTO books (title, author, isbn, published_year, genre, description)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, 0), NULLIF($5, ''), NULLIF($6, ''))
	RETURNING ` + bookColumns

	row := r.db.QueryRow(ctx, query, f.Title, f.Author, f.ISBN, f.PublishedYear, f.Genre, f.Description)
	b, err := scanBook(row)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

// Get returns the book for id, or catalog.ErrNotFound.
func (r *BookPG) Get(ctx context.Context, id int64) (catalog.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// Delete removes the book for id. Returns false if no row existed.
func (r *BookPG) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns the books matching q in insertion order, plus the total
// count of the filtered view. Filters are case-insensitive substring
// matches, mirroring the in-memory store.
func (r *BookPG) List(ctx context.Context, q catalog.ListQuery) ([]catalog.Book, int, error) {
	countQuery := `
	SELECT COUNT(*)
	FROM books
	WHERE ($1 = '' OR genre ILIKE '%' || $1 || '%')
	AND ($2 = '' OR author ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, q.GenreFilter, q.AuthorFilter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := `
	SELECT ` + bookColumns + `
	FROM books
	WHERE ($1 = '' OR genre ILIKE '%' || $1 || '%')
	AND ($2 = '' OR author ILIKE '%' || $2 || '%')
	ORDER BY id
	LIMIT NULLIF($3, 0) OFFSET $4
	`
	limit := 0
	if q.Limit > 0 {
		limit = q.Limit
	}
	offset := 0
	if q.Offset > 0 {
		offset = q.Offset
	}
	rows, err := r.db.Query(ctx, query, q.GenreFilter, q.AuthorFilter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]catalog.Book, 0)
	for rows.Next() {
		var b catalog.Book
		var isbn, genre, description *string
		var year *int32
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &isbn, &year, &genre, &description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if isbn != nil {
			b.ISBN = *isbn
		}
		if year != nil {
			b.PublishedYear = *year
		}
		if genre != nil {
			b.Genre = *genre
		}
		if description != nil {
			b.Description = *description
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// HealthCheck verifies the pool can execute a trivial query.
func (r *BookPG) HealthCheck(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if one != 1 {
		return errors.New("health check: unexpected result")
	}
	return nil
}
