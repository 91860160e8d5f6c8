package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadReplacesWholesale(t *testing.T) {
	store := NewStore()
	assert.Equal(t, StateEmpty, store.Status().State)

	store.Load(sampleItems())
	require.Len(t, store.Items(), 2)

	store.Load([]Item{{ID: "9", Title: "Only"}})
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "9", items[0].ID)

	_, ok := store.Lookup("1")
	assert.False(t, ok)
	assert.Equal(t, StateReady, store.Status().State)
}

func TestStoreCategories(t *testing.T) {
	store := NewStore()
	store.Load([]Item{
		{ID: "1", Title: "a", Category: "Maritime"},
		{ID: "2", Title: "b", Category: "British India"},
		{ID: "3", Title: "c", Category: "Maritime"},
		{ID: "4", Title: "d"},
	})

	assert.Equal(t, []string{"British India", "Maritime"}, store.Categories())
}

func TestStoreFailClearsStaleData(t *testing.T) {
	store := NewStore()
	store.Load(sampleItems())

	store.Fail(ErrFeedUnavailable)

	status := store.Status()
	assert.Equal(t, StateFailed, status.State)
	assert.Zero(t, status.Count)
	assert.True(t, errors.Is(status.Err, ErrFeedUnavailable))
	assert.Empty(t, store.Items())
	assert.Empty(t, store.Categories())
}

func TestStoreLookupPrefersFirstDuplicate(t *testing.T) {
	store := NewStore()
	store.Load([]Item{{ID: "1", Title: "first"}, {ID: "1", Title: "second"}})

	item, ok := store.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "first", item.Title)
}

func TestStoreItemsIsACopy(t *testing.T) {
	store := NewStore()
	store.Load(sampleItems())

	items := store.Items()
	items[0].Title = "mutated"

	assert.Equal(t, "Scinde Dawk", store.Items()[0].Title)
}
