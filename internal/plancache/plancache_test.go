package plancache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/bundler"
	"github.com/piyush168713/parcel/internal/config"
)

func TestCacheHitAndMiss(t *testing.T) {
	cache, err := New(4)
	require.NoError(t, err)

	plan := &bundler.IdealPlan{}
	cache.Put("k1", plan)

	got, hit := cache.Get("k1")
	require.True(t, hit)
	assert.Same(t, plan, got)

	_, hit = cache.Get("k2")
	assert.False(t, hit)
}

func TestCacheEvictsOldest(t *testing.T) {
	cache, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		cache.Put(fmt.Sprintf("k%d", i), &bundler.IdealPlan{})
	}

	assert.Equal(t, 2, cache.Len())
	_, hit := cache.Get("k0")
	assert.False(t, hit, "oldest entry should be evicted")
}

func TestKeyDependsOnConfig(t *testing.T) {
	fp := assetgraph.Fingerprint("abc")
	base := config.Resolved{MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25}
	changed := base
	changed.MinBundleSize = 30000

	assert.NotEqual(t, Key(fp, base), Key(fp, changed))
	assert.Equal(t, Key(fp, base), Key(fp, base))
}

func TestNewDefaultsSize(t *testing.T) {
	cache, err := New(0)
	require.NoError(t, err)
	assert.NotNil(t, cache)
}
