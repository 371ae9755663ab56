package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/piyush168713/parcel/internal/bundler"
	"github.com/piyush168713/parcel/internal/graph"
)

var titleColor = color.New(color.FgCyan, color.Bold)

// bundleView is the serializable projection of one planned bundle.
type bundleView struct {
	ID            int      `json:"id"`
	Kind          string   `json:"kind"`
	Root          string   `json:"root,omitempty"`
	Type          string   `json:"type"`
	Size          uint64   `json:"size"`
	Assets        []string `json:"assets"`
	SourceBundles []int    `json:"sourceBundles,omitempty"`
	Internalized  []string `json:"internalizedAssets,omitempty"`
}

func planViews(plan *bundler.IdealPlan) []bundleView {
	entries := make(map[graph.NodeID]struct{}, len(plan.EntryBundleIDs))
	for _, id := range plan.EntryBundleIDs {
		entries[id] = struct{}{}
	}

	var views []bundleView
	plan.Bundles.ForEach(func(id graph.NodeID, b *bundler.Bundle) bool {
		kind := "split"
		if _, isEntry := entries[id]; isEntry {
			kind = "entry"
		} else if b.IsShared() {
			kind = "shared"
		}
		view := bundleView{
			ID:           int(id),
			Kind:         kind,
			Root:         b.RootAssetID,
			Type:         b.Type,
			Size:         b.Size,
			Assets:       b.AssetIDs(),
			Internalized: b.InternalizedAssetIDs,
		}
		for _, source := range b.SourceBundles {
			view.SourceBundles = append(view.SourceBundles, int(source))
		}
		views = append(views, view)
		return true
	})
	return views
}

func printPlanTable(w io.Writer, plan *bundler.IdealPlan) {
	fmt.Fprintln(w, titleColor.Sprint("Bundles"))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Kind", "Root", "Type", "Size", "Assets", "Sources"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, view := range planViews(plan) {
		sources := make([]string, 0, len(view.SourceBundles))
		for _, source := range view.SourceBundles {
			sources = append(sources, strconv.Itoa(source))
		}
		table.Append([]string{
			strconv.Itoa(view.ID),
			view.Kind,
			view.Root,
			view.Type,
			strconv.FormatUint(view.Size, 10),
			strings.Join(view.Assets, ","),
			strings.Join(sources, ","),
		})
	}
	table.Render()
}

func printPlanJSON(w io.Writer, plan *bundler.IdealPlan) error {
	data, err := json.MarshalIndent(planViews(plan), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
