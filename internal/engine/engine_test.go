package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/config"
	"github.com/piyush168713/parcel/internal/plancache"
)

func testGraph(t *testing.T) *assetgraph.Graph {
	t.Helper()
	g := assetgraph.NewGraph()
	require.NoError(t, g.AddAsset(&assetgraph.Asset{
		ID: "E", Type: "js", Size: 100,
		Env: assetgraph.Environment{Context: "browser"},
	}))
	require.NoError(t, g.AddDependency(&assetgraph.Dependency{ID: "dE", IsEntry: true}))
	require.NoError(t, g.ResolveDependency("dE", "E"))
	return g
}

func TestEnginePlanCaches(t *testing.T) {
	cache, err := plancache.New(4)
	require.NoError(t, err)
	eng := New(cache, zerolog.Nop())

	req := PlanRequest{Graph: testGraph(t), Config: config.Default()}

	first, err := eng.Plan(req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotNil(t, first.Plan)

	second, err := eng.Plan(req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Plan, second.Plan)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestEngineConfigChangeMissesCache(t *testing.T) {
	cache, err := plancache.New(4)
	require.NoError(t, err)
	eng := New(cache, zerolog.Nop())

	g := testGraph(t)
	first, err := eng.Plan(PlanRequest{Graph: g, Config: config.Default()})
	require.NoError(t, err)
	require.False(t, first.Cached)

	changed := config.Default()
	changed.MinBundleSize = 999
	second, err := eng.Plan(PlanRequest{Graph: g, Config: changed})
	require.NoError(t, err)
	assert.False(t, second.Cached)
}

func TestEngineWithoutCache(t *testing.T) {
	eng := New(nil, zerolog.Nop())

	result, err := eng.Plan(PlanRequest{Graph: testGraph(t), Config: config.Default()})
	require.NoError(t, err)
	assert.False(t, result.Cached)
	require.NotNil(t, result.Plan)
}
