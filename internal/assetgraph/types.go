package assetgraph

import "fmt"

// Priority describes how a dependency is loaded relative to its
// parent.
type Priority uint8

const (
	// PrioritySync dependencies load in the same bundle as the parent.
	PrioritySync Priority = iota

	// PriorityParallel dependencies load alongside the parent, in the
	// same bundle group.
	PriorityParallel

	// PriorityLazy dependencies load on demand and force a new bundle
	// group.
	PriorityLazy
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PrioritySync:
		return "sync"
	case PriorityParallel:
		return "parallel"
	case PriorityLazy:
		return "lazy"
	default:
		return fmt.Sprintf("priority(%d)", uint8(p))
	}
}

// ParsePriority parses a priority name.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "sync", "":
		return PrioritySync, nil
	case "parallel":
		return PriorityParallel, nil
	case "lazy":
		return PriorityLazy, nil
	default:
		return 0, fmt.Errorf("invalid dependency priority: %q", s)
	}
}

// BundleBehavior overrides how an asset or dependency is bundled.
type BundleBehavior uint8

const (
	// BehaviorNone is the default: no override.
	BehaviorNone BundleBehavior = iota

	// BehaviorInline assets are embedded into their parent bundle's
	// output rather than shipped as a separate request.
	BehaviorInline

	// BehaviorIsolated assets get a bundle of their own with no
	// sharing across boundaries.
	BehaviorIsolated
)

// String returns the behavior name.
func (b BundleBehavior) String() string {
	switch b {
	case BehaviorNone:
		return "none"
	case BehaviorInline:
		return "inline"
	case BehaviorIsolated:
		return "isolated"
	default:
		return fmt.Sprintf("behavior(%d)", uint8(b))
	}
}

// ParseBundleBehavior parses a behavior name.
func ParseBundleBehavior(s string) (BundleBehavior, error) {
	switch s {
	case "", "none":
		return BehaviorNone, nil
	case "inline":
		return BehaviorInline, nil
	case "isolated":
		return BehaviorIsolated, nil
	default:
		return 0, fmt.Errorf("invalid bundle behavior: %q", s)
	}
}

// Environment describes where an asset executes.
type Environment struct {
	// Context is the execution context, e.g. "browser" or "node".
	Context string

	// IsIsolated marks environments whose assets must not share
	// bundles across the isolation boundary.
	IsIsolated bool
}

// Target identifies the output destination an entry builds for.
type Target struct {
	// Name is the target name from the project configuration.
	Name string

	// DistDir is the output directory for the target.
	DistDir string
}

// Asset is one compiled unit of source as supplied by the upstream
// graph. Immutable within a planning run.
type Asset struct {
	// ID is the stable identity of the asset.
	ID string

	// FilePath is the source path, for diagnostics only.
	FilePath string

	// Type is the asset's language/MIME family, e.g. "js" or "css".
	Type string

	// Size is the asset's byte size from upstream stats.
	Size uint64

	// Env carries the execution context.
	Env Environment

	// BundleBehavior is the asset-level bundling override.
	BundleBehavior BundleBehavior
}

// Dependency is a directed import edge discovered upstream.
type Dependency struct {
	// ID is the stable identity of the dependency.
	ID string

	// SourceAssetID is the importing asset, or empty for a root-level
	// entry dependency.
	SourceAssetID string

	// Priority is the load priority.
	Priority Priority

	// IsEntry marks project entry dependencies.
	IsEntry bool

	// NeedsStableName requests a deterministic output name for the
	// resolved bundle.
	NeedsStableName bool

	// BundleBehavior is the dependency-level override; BehaviorNone
	// when unset.
	BundleBehavior BundleBehavior

	// Target is the output target, set on entry dependencies.
	Target *Target
}
