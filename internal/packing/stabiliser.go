package packing

import "sort"

// LayerStabiliser reorders a box's completed layers so that layers with
// a larger x-y footprint sit lower (smaller z), for physical stability.
// An item's x-y placement within its layer is untouched; its Z shifts
// along with the layer's new StartDepth.
type LayerStabiliser struct{}

// Stabilise returns a copy of layers reordered bottom-to-top by
// descending footprint, with StartDepth recomputed as a running offset
// and each layer's items' Z shifted to match. The input slice and its
// items are not mutated.
func (LayerStabiliser) Stabilise(layers []PackedLayer) []PackedLayer {
	out := make([]PackedLayer, len(layers))
	copy(out, layers)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Footprint() > out[j].Footprint()
	})

	offset := 0
	for i := range out {
		delta := offset - out[i].StartDepth
		if delta != 0 {
			items := make([]PackedItem, len(out[i].Items))
			for j, it := range out[i].Items {
				it.Z += delta
				items[j] = it
			}
			out[i].Items = items
		}
		out[i].StartDepth = offset
		offset += out[i].Depth
	}
	return out
}

// Eligible reports whether stabilisation should run at all: it is
// skipped in single-pass mode, and whenever any item in the box carries
// a packing constraint, since constraints may depend on z-order.
func (LayerStabiliser) Eligible(singlePass bool, items []Item) bool {
	if singlePass {
		return false
	}
	for _, it := range items {
		if it.PackingConstraint != nil {
			return false
		}
	}
	return true
}
