// Package engine orchestrates planning for hosts and the CLI.
//
// The engine sits between callers and the planner: it resolves the
// cache key from the input graph, consults the plan cache, and falls
// back to a fresh planning run. It owns no planning logic itself.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/bundler"
	"github.com/piyush168713/parcel/internal/config"
	"github.com/piyush168713/parcel/internal/plancache"
)

// Engine coordinates the plan cache and the planner.
type Engine struct {
	cache *plancache.Cache
	log   zerolog.Logger
}

// New creates an Engine with the given dependencies. A nil cache
// disables caching.
func New(cache *plancache.Cache, log zerolog.Logger) *Engine {
	return &Engine{cache: cache, log: log}
}

// PlanRequest is a request to plan a graph.
type PlanRequest struct {
	// Graph is the input asset graph.
	Graph *assetgraph.Graph

	// Config is the resolved bundler configuration.
	Config config.Resolved
}

// PlanResult is the outcome of a plan request.
type PlanResult struct {
	// Plan is the computed (or cached) ideal plan.
	Plan *bundler.IdealPlan

	// Fingerprint is the input graph's content identity.
	Fingerprint assetgraph.Fingerprint

	// Cached reports whether the plan came from the cache.
	Cached bool
}

// Plan computes the ideal plan for the request, serving it from the
// cache when the graph and config are unchanged.
func (e *Engine) Plan(req PlanRequest) (PlanResult, error) {
	fp := req.Graph.Fingerprint()
	key := plancache.Key(fp, req.Config)

	if e.cache != nil {
		if plan, hit := e.cache.Get(key); hit {
			e.log.Debug().Str("fingerprint", fp.String()).Msg("plan cache hit")
			return PlanResult{Plan: plan, Fingerprint: fp, Cached: true}, nil
		}
	}

	plan, err := bundler.Plan(req.Graph, req.Config, bundler.WithLogger(e.log))
	if err != nil {
		return PlanResult{}, err
	}
	if e.cache != nil {
		e.cache.Put(key, plan)
	}
	return PlanResult{Plan: plan, Fingerprint: fp}, nil
}
