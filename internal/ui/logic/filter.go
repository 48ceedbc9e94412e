package logic

import (
	"regexp"
	"sort"
	"strings"
)

// ItemSource is the read-only view of the item store the filter needs
type ItemSource interface {
	Materialized() int
	Text(i int) string
}

// Matcher is a compiled case-insensitive wildcard pattern.
// '*' matches any sequence and '?' any single character. The pattern
// matches anywhere in the text.
type Matcher struct {
	pattern string
	re      *regexp.Regexp // nil matches everything
}

// CompileWildcard compiles pattern; with spaceWildcard every space acts as '*'
func CompileWildcard(pattern string, spaceWildcard bool) *Matcher {
	m := &Matcher{pattern: pattern}
	p := pattern
	if spaceWildcard {
		p = strings.ReplaceAll(p, " ", "*")
	}
	if strings.Trim(p, "*") == "" {
		return m
	}

	var b strings.Builder
	b.WriteString("(?i)")
	star := false
	for _, r := range p {
		if r == '*' {
			if !star {
				b.WriteString(".*")
			}
			star = true
			continue
		}
		star = false
		if r == '?' {
			b.WriteString(".")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	m.re = regexp.MustCompile(b.String())
	return m
}

// Pattern returns the source pattern
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether text matches the pattern
func (m *Matcher) Match(text string) bool {
	return m.re == nil || m.re.MatchString(text)
}

// Engine keeps the visible subset of the store for the current pattern.
// The subset is recomputed lazily and only when the pattern or the number
// of published items changed.
type Engine struct {
	spaceWildcard bool
	pattern       string
	matcher       *Matcher
	matches       []int
	mode          SortMode

	valid           bool
	computedPattern string
	computedCount   int
	recomputes      int
}

// NewEngine creates a filter engine with an empty pattern
func NewEngine(spaceWildcard bool) *Engine {
	return &Engine{spaceWildcard: spaceWildcard}
}

// SetPattern stores a new pattern; matches are updated by the next Refresh
func (e *Engine) SetPattern(pattern string) {
	e.pattern = pattern
}

// Pattern returns the current pattern
func (e *Engine) Pattern() string {
	return e.pattern
}

// Stale reports whether Refresh would change anything
func (e *Engine) Stale(items ItemSource) bool {
	return !e.valid || e.computedPattern != e.pattern || e.computedCount != items.Materialized()
}

// Refresh brings matches up to date with the pattern and published items.
// It reports whether any work was done. When only new items arrived
// under an unchanged pattern, just those items are scanned.
func (e *Engine) Refresh(items ItemSource) bool {
	if !e.Stale(items) {
		return false
	}
	if e.matcher == nil || e.matcher.Pattern() != e.pattern {
		e.matcher = CompileWildcard(e.pattern, e.spaceWildcard)
	}

	count := items.Materialized()
	from := 0
	if e.valid && e.computedPattern == e.pattern && count > e.computedCount {
		from = e.computedCount
		e.matches = append([]int(nil), e.matches...)
	} else {
		e.matches = make([]int, 0, count)
		e.recomputes++
	}
	for i := from; i < count; i++ {
		if e.matcher.Match(items.Text(i)) {
			e.matches = append(e.matches, i)
		}
	}
	if e.mode == SortAlphabetical {
		SortFold(e.matches, items.Text)
	}

	e.valid = true
	e.computedPattern = e.pattern
	e.computedCount = count
	return true
}

// Sort switches to case-insensitive alphabetical order and keeps it
func (e *Engine) Sort(items ItemSource) {
	e.mode = SortAlphabetical
	if e.valid {
		e.matches = append([]int(nil), e.matches...)
		SortFold(e.matches, items.Text)
	}
}

// Mode returns the active ordering
func (e *Engine) Mode() SortMode {
	return e.mode
}

// Matches returns item indices in display order. The slice must not be modified.
func (e *Engine) Matches() []int {
	return e.matches
}

// Len returns the number of visible items
func (e *Engine) Len() int {
	return len(e.matches)
}

// At returns the item index shown at display position pos
func (e *Engine) At(pos int) int {
	return e.matches[pos]
}

// Valid reports whether pos is a display position
func (e *Engine) Valid(pos int) bool {
	return pos >= 0 && pos < len(e.matches)
}

// Position returns the display position of an item index or -1
func (e *Engine) Position(index int) int {
	if e.mode == SortInsertion {
		pos := sort.SearchInts(e.matches, index)
		if pos < len(e.matches) && e.matches[pos] == index {
			return pos
		}
		return -1
	}
	for pos, i := range e.matches {
		if i == index {
			return pos
		}
	}
	return -1
}

// FirstStartingWith returns the first display position whose text starts
// with text ignoring case, or -1
func (e *Engine) FirstStartingWith(items ItemSource, text string) int {
	lower := strings.ToLower(text)
	for pos, i := range e.matches {
		if strings.HasPrefix(strings.ToLower(items.Text(i)), lower) {
			return pos
		}
	}
	return -1
}

// Recomputes counts full recomputations, used for diagnostics
func (e *Engine) Recomputes() int {
	return e.recomputes
}
