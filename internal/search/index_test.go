package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BisonV07/order-management-system/internal/domain"
)

func catalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Widget", SKU: "WID-001"},
		{ID: "p2", Name: "Wide Monitor", SKU: "MON-27"},
		{ID: "p3", Name: "Gadget", SKU: "GAD-9"},
	}
}

func TestPrefixSearch(t *testing.T) {
	idx := Build(catalog())

	t.Run("every prefix of an inserted word finds its id", func(t *testing.T) {
		word := "widget"
		for i := 1; i <= len(word); i++ {
			assert.Contains(t, idx.PrefixSearch(word[:i]), "p1", "prefix %q", word[:i])
		}
	})

	t.Run("shared prefix returns the union", func(t *testing.T) {
		assert.Equal(t, []string{"p1", "p2"}, idx.IDs("wid"))
	})

	t.Run("case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"p3"}, idx.IDs("GaD"))
		assert.Equal(t, []string{"p2"}, idx.IDs("mon-"))
	})

	t.Run("absent prefix is empty", func(t *testing.T) {
		assert.Empty(t, idx.PrefixSearch("widgets"))
		assert.Empty(t, idx.PrefixSearch("zzz"))
	})

	t.Run("name and SKU of one product yield one id", func(t *testing.T) {
		// "wid" reaches both "widget" and "wid-001" for p1
		ids := idx.IDs("wid")
		count := 0
		for _, id := range ids {
			if id == "p1" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("substring that is not a prefix does not match", func(t *testing.T) {
		assert.Empty(t, idx.PrefixSearch("dget"))
	})
}

func TestPrefixSearch_EmptyQueryReturnsEverything(t *testing.T) {
	idx := Build(catalog())
	assert.Equal(t, []string{"p1", "p2", "p3"}, idx.IDs(""))
	assert.Equal(t, 3, idx.Len())
}

func TestInsert_Idempotent(t *testing.T) {
	once := New()
	once.Insert("Widget", "p1")

	twice := New()
	twice.Insert("Widget", "p1")
	twice.Insert("Widget", "p1")
	twice.Insert("WIDGET", "p1")

	for _, q := range []string{"", "w", "widg", "widget", "x"} {
		assert.Equal(t, once.PrefixSearch(q), twice.PrefixSearch(q), "query %q", q)
	}
	assert.Len(t, twice.nodes, len(once.nodes))
}

func TestInsert_IgnoresEmptyInput(t *testing.T) {
	idx := New()
	idx.Insert("", "p1")
	idx.Insert("Widget", "")

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.PrefixSearch(""))
	require.Len(t, idx.nodes, 1)
}

func TestInsert_Unicode(t *testing.T) {
	idx := New()
	idx.Insert("Éclair", "p9")

	assert.Contains(t, idx.PrefixSearch("éc"), "p9")
	assert.Contains(t, idx.PrefixSearch("ÉCL"), "p9")
	// No diacritic folding
	assert.Empty(t, idx.PrefixSearch("ecl"))
}

func TestBuild_FreshArenaPerSnapshot(t *testing.T) {
	first := Build(catalog())
	second := Build(catalog()[:1])

	assert.Equal(t, []string{"p1", "p2", "p3"}, first.IDs(""))
	assert.Equal(t, []string{"p1"}, second.IDs(""))
}
