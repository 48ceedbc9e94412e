package store

import (
	"strings"

	"sprinter/internal/domain"
)

// ItemStore is the append-only collection of candidate lines.
//
// Items are appended as soon as they are read but only become visible to
// observers once Materialize publishes them. The store is owned by the UI
// event loop and is not safe for concurrent use.
type ItemStore struct {
	items        []string
	materialized int
	index        map[string]struct{}

	itemWidth  int
	itemHeight int
}

// NewItemStore creates an empty store
func NewItemStore() *ItemStore {
	return &ItemStore{
		items: make([]string, 0, 256),
		index: make(map[string]struct{}),
	}
}

// Append adds a line at the end of the store and returns it as an item
func (s *ItemStore) Append(text string) domain.Item {
	s.items = append(s.items, text)
	s.index[text] = struct{}{}
	return domain.Item{Index: len(s.items) - 1, Text: text}
}

// Materialize publishes every buffered item and returns the inserted range.
// The event is empty when nothing was pending.
func (s *ItemStore) Materialize() domain.RowsInsertedEvent {
	from := s.materialized
	s.materialized = len(s.items)
	return domain.RowsInsertedEvent{From: from, To: s.materialized}
}

// CanMaterializeMore reports whether appended items are waiting to be published
func (s *ItemStore) CanMaterializeMore() bool {
	return s.materialized < len(s.items)
}

// Len returns the number of buffered items, published or not
func (s *ItemStore) Len() int {
	return len(s.items)
}

// Materialized returns the number of published items
func (s *ItemStore) Materialized() int {
	return s.materialized
}

// Text returns the text of the item at index i
func (s *ItemStore) Text(i int) string {
	return s.items[i]
}

// At returns the item at index i
func (s *ItemStore) At(i int) domain.Item {
	return domain.Item{Index: i, Text: s.items[i]}
}

// Contains reports whether text exactly equals an ingested item
func (s *ItemStore) Contains(text string) bool {
	_, ok := s.index[text]
	return ok
}

// FirstWithPrefix returns the first published item starting with prefix,
// compared case-insensitively
func (s *ItemStore) FirstWithPrefix(prefix string) (domain.Item, bool) {
	if prefix == "" {
		return domain.Item{}, false
	}
	lower := strings.ToLower(prefix)
	for i := 0; i < s.materialized; i++ {
		if HasPrefixFold(s.items[i], lower) {
			return s.At(i), true
		}
	}
	return domain.Item{}, false
}

// SetItemSize sets a uniform display size for every item
func (s *ItemStore) SetItemSize(width, height int) {
	s.itemWidth = width
	s.itemHeight = height
}

// ItemSize returns the display size hint; zero values mean unset
func (s *ItemStore) ItemSize() (width, height int) {
	return s.itemWidth, s.itemHeight
}

// HasPrefixFold reports whether text starts with prefix ignoring case.
// lowerPrefix must be strings.ToLower(prefix).
func HasPrefixFold(text, lowerPrefix string) bool {
	return strings.HasPrefix(strings.ToLower(text), lowerPrefix)
}
