package assetgraph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strconv"
)

// Fingerprint is the deterministic content identity of a graph. It is
// computed from asset and dependency content plus edge structure, and
// is stable across construction orders.
type Fingerprint string

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// Fingerprint computes the graph's content identity.
func (g *Graph) Fingerprint() Fingerprint {
	h := sha256.New()

	writeField := func(data string) {
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(data)))
		h.Write(length[:])
		h.Write([]byte(data))
	}

	assetIDs := make([]string, len(g.assetOrder))
	copy(assetIDs, g.assetOrder)
	sort.Strings(assetIDs)
	for _, id := range assetIDs {
		a := g.assets[id]
		writeField(a.ID)
		writeField(a.Type)
		writeField(strconv.FormatUint(a.Size, 10))
		writeField(a.Env.Context)
		writeField(strconv.FormatBool(a.Env.IsIsolated))
		writeField(a.BundleBehavior.String())
	}

	depIDs := make([]string, len(g.depOrder))
	copy(depIDs, g.depOrder)
	sort.Strings(depIDs)
	for _, id := range depIDs {
		d := g.deps[id]
		writeField(d.ID)
		writeField(d.SourceAssetID)
		writeField(d.Priority.String())
		writeField(strconv.FormatBool(d.IsEntry))
		writeField(strconv.FormatBool(d.NeedsStableName))
		writeField(d.BundleBehavior.String())
		if d.Target != nil {
			writeField(d.Target.Name)
		}
		// Resolution order matters to the planner, keep it as-is.
		for _, assetID := range g.resolved[id] {
			writeField(assetID)
		}
	}

	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
