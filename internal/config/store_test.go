package config //nolint:testpackage // Need access to unexported fields for setup

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-worldreward/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	loader, dir := newTestLoader(t)
	return NewStore(loader), dir
}

func TestStore_LoadIsCached(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	first, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	second, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated loads must return the identical cached instance")
}

func TestStore_LoadMissError(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)

	_, ok := store.Get("unknown")
	assert.False(t, ok, "failed loads must not populate the cache")
}

func TestStore_ReloadReplacesSnapshot(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	original, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	// Rewrite the file with different categories and rule, then reload.
	updated := `domain: kitchen-physics
categories:
  - name: object-stability
    weight: 2
    examples:
      - {input: "Does the stacked plate tower remain standing after the bump?", expected_judgment: "no"}
  - name: thermal-behavior
    weight: 1
    examples:
      - {input: "Does the ice cube melt on the hot pan?", expected_judgment: "yes"}
aggregation:
  rule: min
`
	writeConfig(t, dir, "kitchen-physics", updated)

	reloaded, err := store.Reload(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	assert.NotSame(t, original, reloaded)
	assert.Equal(t, domain.RuleMin, reloaded.Aggregation.Rule)

	cached, ok := store.Get("kitchen-physics")
	require.True(t, ok)
	assert.Same(t, reloaded, cached)
}

func TestStore_ReloadFailureKeepsOldConfig(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	original, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	// Corrupt the file: schema violation (category with no examples).
	writeConfig(t, dir, "kitchen-physics",
		"domain: kitchen-physics\ncategories:\n  - name: a\n    weight: 1\naggregation: {rule: min}\n")

	reloaded, err := store.Reload(context.Background(), "kitchen-physics")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigSchema)
	assert.Nil(t, reloaded)

	cached, ok := store.Get("kitchen-physics")
	require.True(t, ok, "previous config must remain retrievable after failed reload")
	assert.Same(t, original, cached, "failed reload must leave the old snapshot intact")
}

func TestStore_Evict(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	_, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	store.Evict("kitchen-physics")
	_, ok := store.Get("kitchen-physics")
	assert.False(t, ok)

	// Evicting an absent entry is a no-op.
	store.Evict("kitchen-physics")
}

func TestStore_ConcurrentReadersDuringReload(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	_, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	const readers = 8
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(readers + 1)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, rerr := store.Reload(context.Background(), "kitchen-physics")
			assert.NoError(t, rerr)
		}
	}()

	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				cfg, ok := store.Get("kitchen-physics")
				// Readers must always see a complete, valid snapshot.
				if assert.True(t, ok) {
					assert.NoError(t, cfg.Validate())
				}
			}
		}()
	}

	wg.Wait()
}

func TestStore_Domains(t *testing.T) {
	store, dir := newTestStore(t)
	writeConfig(t, dir, "kitchen-physics", kitchenPhysicsYAML)

	assert.Empty(t, store.Domains())

	_, err := store.Load(context.Background(), "kitchen-physics")
	require.NoError(t, err)

	assert.Equal(t, []string{"kitchen-physics"}, store.Domains())
}
