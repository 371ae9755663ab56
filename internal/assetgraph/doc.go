// Package assetgraph models the immutable asset/dependency graph the
// planner consumes.
//
// The graph is produced by an upstream build phase (transformers,
// resolvers, dependency discovery) and is treated as read-only here.
// Assets and dependencies are identified by stable string ids; all
// lookups are id-keyed, never by pointer identity.
//
// Key responsibilities:
//   - Hold assets, dependencies and their resolution edges
//   - Deterministic, insertion-ordered iteration (the package has no
//     traversal helper; the planner walks the graph itself)
//   - Content fingerprinting for plan-cache identity
package assetgraph
