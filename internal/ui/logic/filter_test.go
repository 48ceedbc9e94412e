package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	texts        []string
	materialized int
}

func newFakeItems(texts ...string) *fakeItems {
	return &fakeItems{texts: texts, materialized: len(texts)}
}

func (f *fakeItems) Materialized() int  { return f.materialized }
func (f *fakeItems) Text(i int) string { return f.texts[i] }

func (f *fakeItems) add(texts ...string) {
	f.texts = append(f.texts, texts...)
	f.materialized = len(f.texts)
}

func TestWildcardMatching(t *testing.T) {
	m := CompileWildcard("ab*cd", false)
	assert.True(t, m.Match("AbXXcd"))
	assert.True(t, m.Match("abcd"))
	assert.False(t, m.Match("abc"))

	assert.True(t, CompileWildcard("", false).Match("anything"))
	assert.True(t, CompileWildcard("**", false).Match(""))
	assert.True(t, CompileWildcard("a?c", false).Match("xxABCxx"))
	assert.False(t, CompileWildcard("a?c", false).Match("ac"))
}

func TestWildcardQuotesRegexpCharacters(t *testing.T) {
	m := CompileWildcard("a.b(", false)
	assert.True(t, m.Match("a.b("))
	assert.False(t, m.Match("axb("))
}

func TestSpaceAsWildcard(t *testing.T) {
	assert.True(t, CompileWildcard("fo ba", true).Match("foo bar"))
	assert.True(t, CompileWildcard("fo ba", true).Match("foobar"))
	assert.False(t, CompileWildcard("fo ba", false).Match("foobar"))
}

func TestEngineMatchesAreSubsetOfMaterialized(t *testing.T) {
	items := newFakeItems("alpha", "album", "beta", "alps")
	items.materialized = 2

	e := NewEngine(false)
	e.SetPattern("al")
	require.True(t, e.Refresh(items))
	assert.Equal(t, []int{0, 1}, e.Matches())

	items.materialized = 4
	require.True(t, e.Refresh(items))
	assert.Equal(t, []int{0, 1, 3}, e.Matches())
}

func TestEngineRefreshIsIdempotent(t *testing.T) {
	items := newFakeItems("alpha", "beta")
	e := NewEngine(false)
	e.SetPattern("a")

	require.True(t, e.Refresh(items))
	first := append([]int(nil), e.Matches()...)
	assert.False(t, e.Refresh(items), "nothing changed")
	assert.Equal(t, first, e.Matches())
	assert.Equal(t, 1, e.Recomputes())
}

func TestEngineScansOnlyNewItemsWhenCountGrows(t *testing.T) {
	items := newFakeItems("alpha", "beta")
	e := NewEngine(false)
	e.SetPattern("a")
	e.Refresh(items)

	items.add("gamma", "xyz")
	e.Refresh(items)
	assert.Equal(t, []int{0, 1, 2}, e.Matches())
	assert.Equal(t, 1, e.Recomputes())

	e.SetPattern("gam")
	e.Refresh(items)
	assert.Equal(t, []int{2}, e.Matches())
	assert.Equal(t, 2, e.Recomputes())
}

func TestEngineKeepsInsertionOrder(t *testing.T) {
	items := newFakeItems("zeta", "Alpha", "beta")
	e := NewEngine(false)
	e.Refresh(items)
	assert.Equal(t, []int{0, 1, 2}, e.Matches())
	assert.Equal(t, 1, e.Position(1))
	assert.Equal(t, -1, e.Position(7))
}

func TestEngineSortIsCaseInsensitiveAndStable(t *testing.T) {
	items := newFakeItems("zeta", "beta", "Alpha", "alpha")
	e := NewEngine(false)
	e.Refresh(items)
	e.Sort(items)
	assert.Equal(t, SortAlphabetical, e.Mode())
	assert.Equal(t, []int{2, 3, 1, 0}, e.Matches())

	items.add("Gamma")
	e.Refresh(items)
	assert.Equal(t, []int{2, 3, 1, 4, 0}, e.Matches())
	assert.Equal(t, 3, e.Position(4))
}

func TestFirstStartingWith(t *testing.T) {
	items := newFakeItems("beta", "Alpha", "album")
	e := NewEngine(false)
	e.Refresh(items)

	assert.Equal(t, 1, e.FirstStartingWith(items, "al"))
	assert.Equal(t, 2, e.FirstStartingWith(items, "alb"))
	assert.Equal(t, -1, e.FirstStartingWith(items, "x"))
	assert.Equal(t, 0, e.FirstStartingWith(items, ""))
}
