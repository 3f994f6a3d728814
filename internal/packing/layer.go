package packing

// PackedItem is an OrientatedItem placed at a fixed origin within a
// box's inner volume.
type PackedItem struct {
	Orientation OrientatedItem
	X, Y, Z     int
}

// Item returns the packed item's underlying Item.
func (p PackedItem) Item() Item { return p.Orientation.Item }

// Weight returns the packed item's weight.
func (p PackedItem) Weight() int { return p.Orientation.Item.Weight }

// Volume returns the packed item's orientated volume.
func (p PackedItem) Volume() int { return p.Orientation.Volume() }

// PackedLayer is a set of PackedItems sharing a z-range.
type PackedLayer struct {
	StartDepth int
	Depth      int
	Items      []PackedItem
}

// Footprint returns the layer's bounding rectangle area in the x-y
// plane, the minimum rectangle containing every item's footprint.
func (l PackedLayer) Footprint() int {
	maxX, maxY := 0, 0
	for _, it := range l.Items {
		if r := it.X + it.Orientation.Width; r > maxX {
			maxX = r
		}
		if t := it.Y + it.Orientation.Length; t > maxY {
			maxY = t
		}
	}
	return maxX * maxY
}

// itemQueue is a consumable, peekable sequence of items, cloned so a
// trial pack never mutates its caller's slice.
type itemQueue struct {
	items []Item
	pos   int
}

func newItemQueue(items []Item) *itemQueue {
	cloned := make([]Item, len(items))
	copy(cloned, items)
	return &itemQueue{items: cloned}
}

func (q *itemQueue) empty() bool { return q.pos >= len(q.items) }

func (q *itemQueue) peek() (Item, bool) {
	if q.empty() {
		return Item{}, false
	}
	return q.items[q.pos], true
}

func (q *itemQueue) peekAt(offset int) (Item, bool) {
	idx := q.pos + offset
	if idx >= len(q.items) {
		return Item{}, false
	}
	return q.items[idx], true
}

func (q *itemQueue) pop() (Item, bool) {
	it, ok := q.peek()
	if ok {
		q.pos++
	}
	return it, ok
}

// remaining returns the not-yet-consumed tail of the queue.
func (q *itemQueue) remaining() []Item {
	return q.items[q.pos:]
}

// LayerPacker fills one horizontal layer of a box using the row-cursor
// algorithm of the wider VolumePacker loop.
type LayerPacker struct {
	Factory OrientatedItemFactory
}

// PackLayer consumes items from queue (in place) that fit into one
// layer starting at z0, within a footprint of boxWidth x boxLength.
// targetDepth of 0 means the layer's depth is learned from the first
// item placed; a positive targetDepth freezes the layer height.
// alreadyPacked is passed through to packing constraints unchanged.
// PackLayer has no single-pass switch; whether the two-pass depth
// discovery runs is decided by its caller, VolumePacker.
func (lp LayerPacker) PackLayer(
	queue *itemQueue,
	alreadyPacked []PackedItem,
	z0 int,
	targetDepth int,
	boxWidth, boxLength, boxDepth int,
) PackedLayer {
	layer := PackedLayer{StartDepth: z0, Depth: targetDepth}

	x, y := 0, 0
	rowLength := 0

	for {
		it, ok := queue.peek()
		if !ok {
			break
		}

		depthLeft := targetDepth
		if depthLeft <= 0 {
			depthLeft = boxDepth - z0
		}
		widthLeft := boxWidth - x
		lengthLeft := boxLength - y

		var hint *Item
		if h, ok := queue.peekAt(1); ok {
			hint = &h
		}

		oriented, fits := lp.Factory.BestFit(it, widthLeft, lengthLeft, depthLeft, x, y, z0, alreadyPacked, hint)
		if fits {
			queue.pop()
			packed := PackedItem{Orientation: oriented, X: x, Y: y, Z: z0}
			layer.Items = append(layer.Items, packed)
			alreadyPacked = append(alreadyPacked, packed)

			x += oriented.Width
			if oriented.Length > rowLength {
				rowLength = oriented.Length
			}
			if targetDepth <= 0 {
				targetDepth = oriented.Depth
				layer.Depth = targetDepth
			}
			continue
		}

		if rowLength == 0 {
			// Nothing fits even at the start of a fresh row: the
			// layer is done, whatever is left goes to the next layer.
			break
		}

		newY := y + rowLength
		if newY >= boxLength {
			// A new row would overflow the layer's footprint.
			break
		}
		x = 0
		y = newY
		rowLength = 0
	}

	return layer
}
