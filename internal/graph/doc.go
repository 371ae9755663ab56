// Package graph provides the in-memory graph primitives used by the
// bundle planner.
//
// Two structures are exposed: a directed Graph over an arena of
// integer node ids, and a ContentGraph that additionally addresses
// nodes by a stable string content key. Both keep adjacency in
// insertion order so that traversals are deterministic for a given
// construction sequence.
package graph
