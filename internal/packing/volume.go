package packing

// PackedBox is a Box together with every PackedItem placed inside it.
type PackedBox struct {
	Box    Box
	Items  []PackedItem
	Layers []PackedLayer
}

// TotalItemWeight returns the sum of the weights of every packed item.
func (b PackedBox) TotalItemWeight() int {
	total := 0
	for _, it := range b.Items {
		total += it.Weight()
	}
	return total
}

// TotalWeight returns the box's empty weight plus its item weight.
func (b PackedBox) TotalWeight() int {
	return b.Box.EmptyWeight + b.TotalItemWeight()
}

// PackedVolume returns the sum of the orientated volumes of every
// packed item.
func (b PackedBox) PackedVolume() int {
	total := 0
	for _, it := range b.Items {
		total += it.Volume()
	}
	return total
}

// VolumeUtilisation returns packed volume divided by the box's inner
// volume. Returns 0 if the box has no inner volume.
func (b PackedBox) VolumeUtilisation() float64 {
	iv := b.Box.InnerVolume()
	if iv == 0 {
		return 0
	}
	return float64(b.PackedVolume()) / float64(iv)
}

// VolumePacker packs a set of items into one fixed box, trying both box
// rotations unless instructed otherwise.
type VolumePacker struct {
	Layers     LayerPacker
	Stabiliser LayerStabiliser
}

// NewVolumePacker returns a VolumePacker with default collaborators.
func NewVolumePacker() VolumePacker {
	return VolumePacker{Layers: LayerPacker{Factory: OrientatedItemFactory{}}, Stabiliser: LayerStabiliser{}}
}

// Pack attempts to place items (already in canonical order) into box.
// It returns the resulting PackedBox and the items that did not fit.
// When singlePass is true, only the box's natural orientation is tried
// and stabilisation is skipped.
func (vp VolumePacker) Pack(items []Item, box Box, singlePass bool) (PackedBox, []Item) {
	rotations := []Box{box}
	if !singlePass {
		swapped := box.swapped()
		if swapped.InnerWidth != box.InnerWidth || swapped.InnerLength != box.InnerLength {
			rotations = append(rotations, swapped)
		}
	}

	var best PackedBox
	var bestRemaining []Item
	haveBest := false

	for i, rotation := range rotations {
		wasSwapped := i == 1
		packed, remaining := vp.packOneRotation(items, rotation, singlePass)
		if wasSwapped {
			packed = unswapBox(packed, box)
		}
		if vp.Stabiliser.Eligible(singlePass, items) {
			packed.Layers = vp.Stabiliser.Stabilise(packed.Layers)
			packed.Items = flattenLayers(packed.Layers)
		}

		if len(remaining) == 0 {
			return packed, remaining
		}

		if !haveBest || packed.VolumeUtilisation() > best.VolumeUtilisation() {
			best = packed
			bestRemaining = remaining
			haveBest = true
		}
	}

	return best, bestRemaining
}

// packOneRotation runs the layer-stacking loop for a single box
// orientation.
func (vp VolumePacker) packOneRotation(items []Item, box Box, singlePass bool) (PackedBox, []Item) {
	queue := newItemQueue(items)
	var layers []PackedLayer
	var packed []PackedItem

	z0 := 0
	for !queue.empty() && z0 < box.InnerDepth {
		depthLeft := box.InnerDepth - z0
		if depthLeft <= 0 {
			break
		}

		targetDepth := 0
		if !singlePass {
			// Learning pass: discover the layer height without
			// consuming the real queue or polluting the real
			// already-packed context.
			learnQueue := newItemQueue(queue.remaining())
			learnedLayer := vp.Layers.PackLayer(learnQueue, clonePacked(packed), z0, 0, box.InnerWidth, box.InnerLength, box.InnerDepth)
			if len(learnedLayer.Items) == 0 {
				break
			}
			targetDepth = learnedLayer.Depth
		}

		layer := vp.Layers.PackLayer(queue, packed, z0, targetDepth, box.InnerWidth, box.InnerLength, box.InnerDepth)
		if len(layer.Items) == 0 {
			break
		}
		if layer.Depth == 0 {
			layer.Depth = targetDepth
		}

		layers = append(layers, layer)
		packed = append(packed, layer.Items...)
		z0 += layer.Depth
	}

	return PackedBox{Box: box, Items: packed, Layers: layers}, queue.remaining()
}

func clonePacked(items []PackedItem) []PackedItem {
	out := make([]PackedItem, len(items))
	copy(out, items)
	return out
}

func flattenLayers(layers []PackedLayer) []PackedItem {
	var out []PackedItem
	for _, l := range layers {
		out = append(out, l.Items...)
	}
	return out
}

// unswapBox restores the natural (unswapped) frame: every item's x/y
// and width/length are exchanged, and the box reference is replaced
// with the caller's original (unswapped) box.
func unswapBox(packed PackedBox, naturalBox Box) PackedBox {
	packed.Box = naturalBox
	for i, it := range packed.Items {
		it.X, it.Y = it.Y, it.X
		it.Orientation.Width, it.Orientation.Length = it.Orientation.Length, it.Orientation.Width
		packed.Items[i] = it
	}
	for li, layer := range packed.Layers {
		for ii, it := range layer.Items {
			it.X, it.Y = it.Y, it.X
			it.Orientation.Width, it.Orientation.Length = it.Orientation.Length, it.Orientation.Width
			layer.Items[ii] = it
		}
		packed.Layers[li] = layer
	}
	return packed
}
