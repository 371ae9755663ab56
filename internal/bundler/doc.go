// Package bundler implements the ideal-bundle planner.
//
// Given an immutable asset dependency graph and a resolved config,
// Plan decides which assets belong in which output bundles, what
// bundle groups to form, and what reference edges link them. The
// planner minimizes duplication while respecting code-splitting
// boundaries (asset-type changes, async imports, isolation) and
// deployment limits (HTTP parallelism, minimum bundle size).
//
// Planning is a six-phase pipeline over four planner-owned graphs (the
// bundle graph, the async bundle-root graph, the reachability graph and
// the dependency/bundle graph):
//
//  1. Entry and split-point discovery
//  2. Synchronous reachability
//  3. Ancestor availability
//  4. Placement and shared-bundle synthesis
//  5. Merge and cleanup
//  6. Plan export
//
// The planner is a pure function of its inputs: single-threaded,
// synchronous, and deterministic for a deterministic input graph. It
// never mutates the input graph.
package bundler
