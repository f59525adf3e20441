package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Insert(t *testing.T) {
	s := NewStore()

	b := s.Insert(Fields{Title: "A", Author: "B", ISBN: "isbn-1"})

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, "A", b.Title)
	assert.Equal(t, "B", b.Author)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt, "both timestamps stamped to the same instant")
	assert.False(t, b.CreatedAt.IsZero())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, b, got)
}

func TestStore_IDsNeverReused(t *testing.T) {
	s := NewStore()

	first := s.Insert(Fields{Title: "One", Author: "X"})
	second := s.Insert(Fields{Title: "Two", Author: "X"})
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	require.True(t, s.Remove(second.ID))

	third := s.Insert(Fields{Title: "Three", Author: "X"})
	assert.Equal(t, int64(3), third.ID, "deleted id must stay retired")
}

func TestStore_AllInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Insert(Fields{Title: "One", Author: "X"})
	s.Insert(Fields{Title: "Two", Author: "X"})
	s.Insert(Fields{Title: "Three", Author: "X"})

	require.True(t, s.Remove(2))
	s.Insert(Fields{Title: "Four", Author: "X"})

	var titles []string
	for _, b := range s.All() {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"One", "Three", "Four"}, titles)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	b := s.Insert(Fields{Title: "One", Author: "X"})

	assert.True(t, s.Remove(b.ID))
	assert.False(t, s.Remove(b.ID), "second remove reports no record")

	_, ok := s.Get(b.ID)
	assert.False(t, ok)
}

func TestStore_Replace(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	b := s.Insert(Fields{Title: "One", Author: "X"})

	now = now.Add(time.Minute)
	b.Title = "One, revised"
	stored, ok := s.Replace(b)
	require.True(t, ok)

	assert.Equal(t, "One, revised", stored.Title)
	assert.Equal(t, b.CreatedAt, stored.CreatedAt, "created_at never mutated")
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))

	_, ok = s.Replace(Book{ID: 42})
	assert.False(t, ok)
}

func TestStore_ISBNConflict(t *testing.T) {
	s := NewStore()
	a := s.Insert(Fields{Title: "A", Author: "X", ISBN: "978-1234567890"})
	s.Insert(Fields{Title: "B", Author: "X"})

	assert.True(t, s.ISBNConflict("978-1234567890", 0))
	assert.False(t, s.ISBNConflict("978-1234567890", a.ID), "record excluded from its own check")
	assert.False(t, s.ISBNConflict("", 0), "empty isbn never conflicts")
	assert.False(t, s.ISBNConflict("978-1234567890x", 0))
	assert.False(t, s.ISBNConflict("978-1", 0), "exact match, not substring")
}
