package logic

import (
	"sort"
	"strings"
)

// SortMode represents the order of visible items
type SortMode int

const (
	SortInsertion SortMode = iota
	SortAlphabetical
)

func (m SortMode) String() string {
	switch m {
	case SortInsertion:
		return "insertion"
	case SortAlphabetical:
		return "alphabetical"
	default:
		return "unknown"
	}
}

// SortFold orders item indices by their text, case-insensitively.
// Equal texts keep insertion order.
func SortFold(indices []int, text func(int) string) {
	keys := make(map[int]string, len(indices))
	for _, i := range indices {
		keys[i] = strings.ToLower(text(i))
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ka, kb := keys[indices[a]], keys[indices[b]]
		if ka != kb {
			return ka < kb
		}
		return indices[a] < indices[b]
	})
}
