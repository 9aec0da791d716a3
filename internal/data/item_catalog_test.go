package data

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/testutil"
)

const catalogYAML = `
items:
  - id: 1001
    name: Rusty Short Sword
    class: common
    weight: 80
    price: 1234
    nodrop: 1
    norent: 1
    slots: 24576
    classes: 65535
    races: 65535
    damage: 6
    delay: 30
  - id: 2001
    name: Small Bag
    class: container
    bag_slots: 8
    price: 300
    nodrop: 1
    norent: 1
`

func TestParseItemCatalog(t *testing.T) {
	cat, err := ParseItemCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, []int32{1001, 2001}, cat.IDs())

	sword, err := cat.ItemByID(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "Rusty Short Sword", sword.Name)
	assert.Equal(t, 1234.0, sword.Price)
	assert.Equal(t, []model.SlotID{model.SlotPrimary, model.SlotSecondary}, sword.EquipSlots())

	bag, err := cat.ItemByID(context.Background(), 2001)
	require.NoError(t, err)
	assert.True(t, bag.IsContainer())
	assert.Equal(t, int32(8), bag.BagSlots)

	_, err = cat.ItemByID(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestParseItemCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"duplicate id", "items:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n"},
		{"zero id", "items:\n  - {id: 0, name: a}\n"},
		{"bag too big", "items:\n  - {id: 1, name: a, class: container, bag_slots: 11}\n"},
		{"bad class", "items:\n  - {id: 1, name: a, class: wand}\n"},
		{"not yaml", "items: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemCatalog([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadItemCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	cat, err := LoadItemCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	_, err = LoadItemCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestItemCatalog_CanceledContext(t *testing.T) {
	cat := NewItemCatalog(testutil.AllTemplates()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cat.ItemByID(ctx, testutil.SwordID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogCache_ReadThrough(t *testing.T) {
	src := testutil.FixtureCatalog()
	cache := NewCatalogCache(src)
	ctx := context.Background()

	for range 3 {
		tpl, err := cache.ItemByID(ctx, testutil.SwordID)
		require.NoError(t, err)
		assert.Equal(t, testutil.SwordID, tpl.ID)
	}
	assert.Equal(t, int64(1), src.Calls())

	hits, misses := cache.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	cache.Reset()
	assert.Zero(t, cache.Len())
	_, err := cache.ItemByID(ctx, testutil.SwordID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), src.Calls())
}

func TestCatalogCache_MissesAreNotCached(t *testing.T) {
	src := testutil.FixtureCatalog()
	cache := NewCatalogCache(src)

	for range 2 {
		_, err := cache.ItemByID(context.Background(), 999999)
		assert.ErrorIs(t, err, model.ErrItemNotFound)
	}
	assert.Equal(t, int64(2), src.Calls())
	_, ok := cache.Cached(999999)
	assert.False(t, ok)
}

func TestCatalogCache_ConcurrentReaders(t *testing.T) {
	cache := NewCatalogCache(testutil.FixtureCatalog())
	ids := []int32{testutil.SwordID, testutil.GemID, testutil.SmallBagID, testutil.ArrowsID}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids[i%len(ids)]
			tpl, err := cache.ItemByID(context.Background(), id)
			assert.NoError(t, err)
			assert.Equal(t, id, tpl.ID)
		}()
	}
	wg.Wait()
	assert.Equal(t, len(ids), cache.Len())
}

func TestResolveAll(t *testing.T) {
	src := testutil.FixtureCatalog()
	src.SlowIDs = map[int32]time.Duration{testutil.GemID: time.Second}

	got, err := ResolveAll(context.Background(), src,
		[]int32{testutil.SwordID, 999999, testutil.GemID, testutil.SwordID, testutil.SmallBagID},
		ResolveOptions{Concurrency: 2, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Contains(t, got, testutil.SwordID)
	assert.Contains(t, got, testutil.SmallBagID)
	assert.NotContains(t, got, testutil.GemID, "slow lookup counts as a miss")
	assert.NotContains(t, got, int32(999999))
	assert.Equal(t, int64(4), src.Calls(), "duplicate ids are fetched once")
}

func TestResolveAll_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveAll(ctx, testutil.FixtureCatalog(), []int32{testutil.SwordID}, ResolveOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithLookupTimeout(t *testing.T) {
	src := testutil.FixtureCatalog()
	src.SlowIDs = map[int32]time.Duration{testutil.GemID: 2 * time.Second}
	cat := WithLookupTimeout(src, 30*time.Millisecond)

	start := time.Now()
	_, err := cat.ItemByID(context.Background(), testutil.GemID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	tpl, err := cat.ItemByID(context.Background(), testutil.SwordID)
	require.NoError(t, err)
	assert.Equal(t, testutil.SwordID, tpl.ID)

	assert.Same(t, src, WithLookupTimeout(src, 0), "zero timeout leaves the catalog as is")
}
