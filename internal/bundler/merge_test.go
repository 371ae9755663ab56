package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/config"
)

func TestParallelRequestLimitShedsSmallestShared(t *testing.T) {
	// E1's bundle group carries two shared bundles. With a group cap
	// of 2, the smaller shared bundle is folded back into its in-group
	// source and dissolved into the remaining one.
	b := newBuilder(t).
		asset("E1", "js", 100).
		asset("E2", "js", 100).
		asset("E3", "js", 100).
		asset("S1", "js", 1000).
		asset("S2", "js", 500).
		entry("dE1", "E1").
		entry("dE2", "E2").
		entry("dE3", "E3").
		dep("d1", "E1", "S1", assetgraph.PrioritySync).
		dep("d2", "E2", "S1", assetgraph.PrioritySync).
		dep("d3", "E1", "S2", assetgraph.PrioritySync).
		dep("d4", "E3", "S2", assetgraph.PrioritySync)

	cfg := config.Resolved{MinBundles: 1, MinBundleSize: 0, MaxParallelRequests: 2}
	plan, err := Plan(b.g, cfg)
	require.NoError(t, err)
	checkInvariants(t, plan, cfg)

	shared := plan.SharedBundles()
	require.Len(t, shared, 1)
	assert.Equal(t, []string{"S1"}, assetIDsOf(shared[0]))

	e1, _ := plan.BundleFor("E1")
	e3, _ := plan.BundleFor("E3")
	assert.Equal(t, []string{"E1", "S2"}, assetIDsOf(e1))
	assert.Equal(t, []string{"E3", "S2"}, assetIDsOf(e3))

	e2, _ := plan.BundleFor("E2")
	assert.Equal(t, []string{"E2"}, assetIDsOf(e2))
}

func TestParallelRequestLimitKeepsGroupsWithinCap(t *testing.T) {
	b := newBuilder(t).
		asset("E1", "js", 100).
		asset("E2", "js", 100).
		asset("S", "js", 40000).
		entry("dE1", "E1").
		entry("dE2", "E2").
		dep("d1", "E1", "S", assetgraph.PrioritySync).
		dep("d2", "E2", "S", assetgraph.PrioritySync)

	cfg := config.Resolved{MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25}
	plan, err := Plan(b.g, cfg)
	require.NoError(t, err)

	assert.Len(t, plan.SharedBundles(), 1, "groups under the cap keep their shared bundles")
}

func TestInlineSplitStaysInGroup(t *testing.T) {
	b := newBuilder(t).
		asset("E", "js", 100).
		assetWith("I", "js", 40, assetgraph.BehaviorInline).
		entry("dE", "E").
		dep("d1", "E", "I", assetgraph.PrioritySync)

	cfg := cfgWithMinSize(20000)
	plan, err := Plan(b.g, cfg)
	require.NoError(t, err)
	checkInvariants(t, plan, cfg)

	entry, _ := plan.BundleFor("E")
	assert.Equal(t, []string{"E"}, assetIDsOf(entry))

	inline, ok := plan.BundleFor("I")
	require.True(t, ok)
	assert.Equal(t, []string{"I"}, assetIDsOf(inline))
	assert.Equal(t, assetgraph.BehaviorInline, inline.Behavior)
	assert.False(t, inline.NeedsStableName)

	// The inline bundle lives in the entry's bundle group and is not
	// folded into the entry.
	assert.Equal(t, plan.BundleRoots["E"].GroupID, plan.BundleRoots["I"].GroupID)
	assert.True(t, plan.Bundles.HasEdge(plan.BundleRoots["E"].BundleID, plan.BundleRoots["I"].BundleID))
}

func TestEntryBundleNeedsStableName(t *testing.T) {
	b := newBuilder(t).
		asset("E", "js", 100).
		asset("L", "js", 50).
		entry("dE", "E").
		dep("d1", "E", "L", assetgraph.PriorityLazy)

	plan, err := Plan(b.g, cfgWithMinSize(20000))
	require.NoError(t, err)

	entry, _ := plan.BundleFor("E")
	assert.True(t, entry.NeedsStableName)

	lazy, _ := plan.BundleFor("L")
	assert.False(t, lazy.NeedsStableName)
}
