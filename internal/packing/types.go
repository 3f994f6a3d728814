// Package packing implements the 3D bin-packing core: item orientation
// selection, layer filling, volume packing across a box catalog, and
// post-hoc weight redistribution. The package performs no I/O and owns
// no shared mutable state between calls.
package packing

import "sort"

// RotationPolicy controls which permutations of an item's three
// dimensions are legal orientations.
type RotationPolicy int

const (
	// RotationNever allows only the item's original (length, width, depth).
	RotationNever RotationPolicy = iota
	// RotationKeepFlat allows swapping length and width but keeps depth fixed.
	RotationKeepFlat
	// RotationAny allows all six permutations of the three dimensions.
	RotationAny
)

// PackingConstraint inspects a proposed placement against the items
// already packed in the same box and decides whether it is acceptable.
// alreadyPacked is read-only; implementations must not retain it beyond
// the call.
type PackingConstraint func(alreadyPacked []PackedItem, x, y, z int) bool

// Item is an immutable unit to be packed. Dimensions and weight are
// caller-defined integer units that must be consistent across a call.
type Item struct {
	ID                string
	Length            int
	Width             int
	Depth             int
	Weight            int
	AllowedRotation   RotationPolicy
	PackingConstraint PackingConstraint
}

// Volume returns the item's length*width*depth.
func (it Item) Volume() int {
	return it.Length * it.Width * it.Depth
}

// SmallestDimension returns the smallest of the item's three dimensions.
func (it Item) SmallestDimension() int {
	m := it.Length
	if it.Width < m {
		m = it.Width
	}
	if it.Depth < m {
		m = it.Depth
	}
	return m
}

// LargestDimension returns the largest of the item's three dimensions.
func (it Item) LargestDimension() int {
	m := it.Length
	if it.Width > m {
		m = it.Width
	}
	if it.Depth > m {
		m = it.Depth
	}
	return m
}

// BoxID identifies a distinct stock SKU. Two boxes with identical
// dimensions but different BoxIDs are tracked as separate catalog
// entries; the quantity map is keyed by BoxID, never by dimension
// equality, so distinct SKUs are never collapsed.
type BoxID string

// Box is an immutable catalog entry. Outer dimensions are informational;
// inner dimensions bound where items may be placed.
type Box struct {
	ID          BoxID
	OuterLength int
	OuterWidth  int
	OuterDepth  int
	InnerLength int
	InnerWidth  int
	InnerDepth  int
	EmptyWeight int
	MaxPayload  int
}

// InnerVolume returns the box's packable volume.
func (b Box) InnerVolume() int {
	return b.InnerLength * b.InnerWidth * b.InnerDepth
}

// swapped returns a copy of b with inner width and length exchanged,
// used by VolumePacker to trial the box in its alternate orientation.
func (b Box) swapped() Box {
	b.InnerWidth, b.InnerLength = b.InnerLength, b.InnerWidth
	return b
}

// Quantities tracks how many boxes of each BoxID remain available. A
// Packer call clones its input map at entry and never mutates the
// caller's copy.
type Quantities map[BoxID]int

// Clone returns an independent copy of q.
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// SortItems orders items by the canonical key: volume descending, then
// weight descending, then stable ID. The slice is sorted in place using
// a stable sort so callers that pre-sorted for other reasons keep their
// relative order on exact ties.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		vi, vj := items[i].Volume(), items[j].Volume()
		if vi != vj {
			return vi > vj
		}
		if items[i].Weight != items[j].Weight {
			return items[i].Weight > items[j].Weight
		}
		return items[i].ID < items[j].ID
	})
}
