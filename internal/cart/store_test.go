package cart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"bookstall/internal/catalog"
)

func lithographs() catalog.Item {
	return catalog.Item{ID: "2", Title: "India: The 1854 Lithographs", Author: "D.R. Martin", ListedAmount: 12000, DiscountPercent: 10, Status: "Available"}
}

func maritime() catalog.Item {
	return catalog.Item{ID: "4", Title: "Maritime Mail of the Indian Ocean", Author: "Philip Cockrill", ListedAmount: 3200, DiscountPercent: 15}
}

func TestAddSameItemTwice(t *testing.T) {
	store := NewStore(nil)

	_, err := store.Add(lithographs())
	require.NoError(t, err)
	line, err := store.Add(lithographs())
	require.NoError(t, err)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 10800.0, lines[0].UnitPrice)
	assert.Equal(t, 2*lines[0].UnitPrice, lines[0].LineTotal())
	assert.Equal(t, 2, store.Count())
	assert.Equal(t, 21600.0, store.Total())
}

func TestUnitPriceIsSnapshotted(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Add(lithographs())
	require.NoError(t, err)

	repriced := lithographs()
	repriced.DiscountPercent = 0
	line, err := store.Add(repriced)
	require.NoError(t, err)

	assert.Equal(t, 10800.0, line.UnitPrice)
	assert.Equal(t, 21600.0, store.Total())
}

func TestAddSoldItemIsRejected(t *testing.T) {
	store := NewStore(nil)
	sold := catalog.Item{ID: "3", Title: "The Scinde Dawk", ListedAmount: 3500, Status: "SOLD"}

	_, err := store.Add(sold)

	assert.ErrorIs(t, err, ErrItemSold)
	assert.True(t, store.IsEmpty())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	store := NewStore(nil)
	_, _ = store.Add(maritime())
	_, _ = store.Add(lithographs())
	_, _ = store.Add(maritime())

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "4", lines[0].ID)
	assert.Equal(t, "2", lines[1].ID)
}

func TestSetQuantity(t *testing.T) {
	store := NewStore(nil)
	_, _ = store.Add(maritime())

	line, ok := store.SetQuantity("4", 3)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.InDelta(t, 8160.0, store.Total(), 1e-9)

	line, ok = store.SetQuantity("4", 0)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	line, ok = store.SetQuantity("4", -7)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	_, ok = store.SetQuantity("missing", 5)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Count())
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 4, ParseQuantity("4"))
	assert.Equal(t, 4, ParseQuantity(" 4 "))
	assert.Equal(t, 1, ParseQuantity("0"))
	assert.Equal(t, 1, ParseQuantity("-2"))
	assert.Equal(t, 1, ParseQuantity("two"))
	assert.Equal(t, 1, ParseQuantity(""))
}

func TestRemove(t *testing.T) {
	store := NewStore(nil)
	_, _ = store.Add(maritime())
	_, _ = store.Add(lithographs())

	assert.True(t, store.Remove("4"))
	assert.False(t, store.Remove("4"))
	assert.NotPanics(t, func() { store.Remove("never-added") })

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "2", lines[0].ID)
}

func TestEmptyCartTotals(t *testing.T) {
	store := NewStore(nil)
	assert.Zero(t, store.Total())
	assert.Zero(t, store.Count())
	assert.True(t, store.IsEmpty())
}

func TestClear(t *testing.T) {
	store := NewStore(nil)
	_, _ = store.Add(maritime())
	store.Clear()

	assert.True(t, store.IsEmpty())
	_, _ = store.Add(maritime())
	assert.Equal(t, 1, store.Count())
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	store := NewStore(nil)
	var seen []Summary
	store.Subscribe(func(s Summary) { seen = append(seen, s) })

	_, _ = store.Add(maritime())
	_, _ = store.Add(maritime())
	store.SetQuantity("4", 5)
	store.Remove("missing")
	store.Remove("4")
	store.Clear()

	require.Len(t, seen, 5)
	assert.Equal(t, Summary{Count: 1, Total: 2720}, seen[0])
	assert.Equal(t, Summary{Count: 2, Total: 5440}, seen[1])
	assert.Equal(t, 5, seen[2].Count)
	assert.Equal(t, Summary{}, seen[3])
	assert.Equal(t, Summary{}, seen[4])
}

func TestCartInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewStore(nil)
		items := make([]catalog.Item, 4)
		for i := range items {
			items[i] = catalog.Item{
				ID:           fmt.Sprintf("b%d", i),
				Title:        fmt.Sprintf("Book %d", i),
				ListedAmount: float64(rapid.IntRange(0, 20000).Draw(t, "amount")),
			}
		}

		ops := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			item := items[rapid.IntRange(0, len(items)-1).Draw(t, "item")]
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				if _, err := store.Add(item); err != nil {
					t.Fatalf("add: %v", err)
				}
			case 1:
				store.SetQuantity(item.ID, rapid.IntRange(-3, 10).Draw(t, "qty"))
			case 2:
				store.Remove(item.ID)
			}
		}

		seen := make(map[string]bool)
		var count int
		var total float64
		for _, line := range store.Lines() {
			if seen[line.ID] {
				t.Fatalf("duplicate line for %s", line.ID)
			}
			seen[line.ID] = true
			if line.Quantity < 1 {
				t.Fatalf("line %s has quantity %d", line.ID, line.Quantity)
			}
			count += line.Quantity
			total += line.LineTotal()
		}
		if count != store.Count() {
			t.Fatalf("count %d, store says %d", count, store.Count())
		}
		if total != store.Total() {
			t.Fatalf("total %v, store says %v", total, store.Total())
		}
	})
}
