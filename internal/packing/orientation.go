package packing

// OrientatedItem pairs an Item with one legal permutation of its three
// dimensions. Width/Length/Depth here are a permutation of the source
// item's Length/Width/Depth; callers must read dimensions from the
// OrientatedItem, never the underlying Item, once an orientation is
// chosen.
type OrientatedItem struct {
	Item   Item
	Width  int
	Length int
	Depth  int
}

// Volume returns the orientation's volume, identical to Item.Volume.
func (o OrientatedItem) Volume() int {
	return o.Width * o.Length * o.Depth
}

// dims is an internal (width, length, depth) triple used to enumerate
// permutations before an OrientatedItem is constructed.
type dims struct {
	w, l, d int
}

// permutationsFor returns the legal dimension permutations for the
// item's rotation policy, in a fixed canonical order so that the
// lexicographic tie-break in rankOrientations is deterministic.
func permutationsFor(it Item) []dims {
	l, w, d := it.Length, it.Width, it.Depth
	switch it.AllowedRotation {
	case RotationNever:
		return []dims{{w, l, d}}
	case RotationKeepFlat:
		return []dims{
			{w, l, d},
			{l, w, d},
		}
	default: // RotationAny
		return []dims{
			{w, l, d},
			{l, w, d},
			{w, d, l},
			{d, w, l},
			{l, d, w},
			{d, l, w},
		}
	}
}

// OrientatedItemFactory enumerates and ranks legal orientations of an
// item against a residual cuboid.
type OrientatedItemFactory struct{}

// PossibleOrientations returns every orientation of it that fits inside
// a cuboid of the given residual dimensions, honoring the item's
// rotation policy. It does not apply the packing constraint or ranking;
// callers needing the single best fit should use BestFit.
func (OrientatedItemFactory) PossibleOrientations(it Item, widthLeft, lengthLeft, depthLeft int) []OrientatedItem {
	var out []OrientatedItem
	for _, p := range permutationsFor(it) {
		if p.w <= widthLeft && p.l <= lengthLeft && p.d <= depthLeft {
			out = append(out, OrientatedItem{Item: it, Width: p.w, Length: p.l, Depth: p.d})
		}
	}
	return out
}

// BestFit returns the preferred orientation of it within the residual
// cuboid (widthLeft, lengthLeft, depthLeft), considering an optional
// hint item that will be attempted next. alreadyPacked is the context passed to any
// PackingConstraint. x, y, z is the proposed placement origin for
// constraint evaluation. ok is false if no legal orientation fits or
// survives the constraint.
func (f OrientatedItemFactory) BestFit(
	it Item,
	widthLeft, lengthLeft, depthLeft int,
	x, y, z int,
	alreadyPacked []PackedItem,
	hint *Item,
) (OrientatedItem, bool) {
	candidates := f.PossibleOrientations(it, widthLeft, lengthLeft, depthLeft)
	if it.PackingConstraint != nil {
		filtered := candidates[:0:0]
		for _, c := range candidates {
			if it.PackingConstraint(alreadyPacked, x, y, z) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return OrientatedItem{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if rankBetter(c, best, widthLeft, lengthLeft, depthLeft, hint) {
			best = c
		}
	}
	return best, true
}

// rankBetter reports whether candidate is strictly preferred over
// current under the four-tier comparator: smallest depth surplus,
// smallest footprint waste, better fit for the hint item, then a
// lexicographic tie-break on the dimension triple.
func rankBetter(candidate, current OrientatedItem, widthLeft, lengthLeft, depthLeft int, hint *Item) bool {
	cs := depthLeft - candidate.Depth
	ds := depthLeft - current.Depth
	if cs != ds {
		return cs < ds
	}

	cWaste := widthLeft*lengthLeft - candidate.Width*candidate.Length
	dWaste := widthLeft*lengthLeft - current.Width*current.Length
	if cWaste != dWaste {
		return cWaste < dWaste
	}

	if hint != nil {
		cHint := hintFits(*hint, widthLeft, lengthLeft, depthLeft, candidate)
		dHint := hintFits(*hint, widthLeft, lengthLeft, depthLeft, current)
		if cHint != dHint {
			return cHint
		}
	}

	return lexLess(candidate, current)
}

// hintFits simulates whether hint fits in the remainder of the residual
// cuboid after placing after, assuming after is placed at the cursor's
// origin and the cursor advances along the width axis (the same
// advance LayerPacker performs).
func hintFits(hint Item, widthLeft, lengthLeft, depthLeft int, after OrientatedItem) bool {
	remainingWidth := widthLeft - after.Width
	if remainingWidth > 0 {
		f := OrientatedItemFactory{}
		if _, ok := f.BestFit(hint, remainingWidth, lengthLeft, depthLeft, 0, 0, 0, nil, nil); ok {
			return true
		}
	}
	// Also consider the hint fitting in a fresh row below the row
	// after would start, since a new row is the other place the next
	// item may land.
	remainingLength := lengthLeft - after.Length
	if remainingLength > 0 {
		f := OrientatedItemFactory{}
		if _, ok := f.BestFit(hint, widthLeft, remainingLength, depthLeft, 0, 0, 0, nil, nil); ok {
			return true
		}
	}
	return false
}

// lexLess provides the stable canonical ordering used as the final
// tie-break: lexicographic comparison on (width, length, depth).
func lexLess(a, b OrientatedItem) bool {
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	if a.Length != b.Length {
		return a.Length < b.Length
	}
	return a.Depth < b.Depth
}
