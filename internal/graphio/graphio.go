// Package graphio loads asset-graph documents from YAML.
//
// The document is a flat list of assets and dependencies; Parse wires
// them into an assetgraph.Graph. It exists for the CLI and for test
// fixtures; hosts embedding the planner construct graphs directly.
package graphio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piyush168713/parcel/internal/assetgraph"
)

// Document is the YAML schema of an asset graph.
type Document struct {
	// Assets lists every asset in the graph.
	Assets []AssetDoc `yaml:"assets"`

	// Dependencies lists every dependency edge.
	Dependencies []DependencyDoc `yaml:"dependencies"`
}

// AssetDoc describes one asset.
type AssetDoc struct {
	// ID is the stable asset id.
	ID string `yaml:"id"`

	// FilePath is the source path.
	FilePath string `yaml:"filePath,omitempty"`

	// Type is the asset type, e.g. "js".
	Type string `yaml:"type"`

	// Size is the asset byte size.
	Size uint64 `yaml:"size"`

	// Context is the execution context; defaults to "browser".
	Context string `yaml:"context,omitempty"`

	// Isolated marks an isolated environment.
	Isolated bool `yaml:"isolated,omitempty"`

	// BundleBehavior is "inline", "isolated" or empty.
	BundleBehavior string `yaml:"bundleBehavior,omitempty"`
}

// DependencyDoc describes one dependency.
type DependencyDoc struct {
	// ID is the stable dependency id.
	ID string `yaml:"id"`

	// From is the importing asset id; empty for root-level entries.
	From string `yaml:"from,omitempty"`

	// To lists the asset ids the dependency resolves to.
	To []string `yaml:"to"`

	// Priority is "sync", "parallel" or "lazy"; defaults to sync.
	Priority string `yaml:"priority,omitempty"`

	// Entry marks entry dependencies.
	Entry bool `yaml:"entry,omitempty"`

	// NeedsStableName requests a stable output name.
	NeedsStableName bool `yaml:"needsStableName,omitempty"`

	// BundleBehavior is "inline", "isolated" or empty.
	BundleBehavior string `yaml:"bundleBehavior,omitempty"`

	// Target is the output target name for entries.
	Target string `yaml:"target,omitempty"`
}

// Load reads and parses an asset-graph document from a file.
func Load(path string) (*assetgraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, err)
	}
	return g, nil
}

// Parse builds an asset graph from a YAML document.
func Parse(data []byte) (*assetgraph.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return doc.Graph()
}

// Graph wires the document into an asset graph.
func (d *Document) Graph() (*assetgraph.Graph, error) {
	g := assetgraph.NewGraph()

	for _, a := range d.Assets {
		behavior, err := assetgraph.ParseBundleBehavior(a.BundleBehavior)
		if err != nil {
			return nil, fmt.Errorf("asset %q: %w", a.ID, err)
		}
		context := a.Context
		if context == "" {
			context = "browser"
		}
		asset := &assetgraph.Asset{
			ID:             a.ID,
			FilePath:       a.FilePath,
			Type:           a.Type,
			Size:           a.Size,
			Env:            assetgraph.Environment{Context: context, IsIsolated: a.Isolated},
			BundleBehavior: behavior,
		}
		if err := g.AddAsset(asset); err != nil {
			return nil, err
		}
	}

	for _, dd := range d.Dependencies {
		priority, err := assetgraph.ParsePriority(dd.Priority)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", dd.ID, err)
		}
		behavior, err := assetgraph.ParseBundleBehavior(dd.BundleBehavior)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", dd.ID, err)
		}
		dep := &assetgraph.Dependency{
			ID:              dd.ID,
			SourceAssetID:   dd.From,
			Priority:        priority,
			IsEntry:         dd.Entry,
			NeedsStableName: dd.NeedsStableName,
			BundleBehavior:  behavior,
		}
		if dd.Target != "" {
			dep.Target = &assetgraph.Target{Name: dd.Target}
		}
		if err := g.AddDependency(dep); err != nil {
			return nil, err
		}
		for _, to := range dd.To {
			if err := g.ResolveDependency(dd.ID, to); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
