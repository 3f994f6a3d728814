package packing

import (
	"math"
	"sort"
)

// WeightRedistributor rebalances per-box total weight across an
// already-valid packing, without changing the packed item set and
// without increasing box count.
type WeightRedistributor struct {
	packer *Packer
}

// NewWeightRedistributor returns a WeightRedistributor that performs
// local re-packs against packer's box catalog.
func NewWeightRedistributor(packer *Packer) WeightRedistributor {
	return WeightRedistributor{packer: packer}
}

// Redistribute runs the pairwise migration loop of spec §4.6 until a
// full pass makes no further change, and returns the rebalanced list.
// quantities reflects the quantities already consumed by list; it is
// cloned internally and never mutated in the caller's copy.
func (wr WeightRedistributor) Redistribute(list PackedBoxList, quantities Quantities) PackedBoxList {
	if len(list.Boxes) < 2 {
		return list
	}

	boxes := append([]PackedBox(nil), list.Boxes...)
	quantities = quantities.Clone()

	for {
		sortBoxesByWeightDesc(boxes)
		if !wr.tryOnePass(&boxes, quantities) {
			return PackedBoxList{Boxes: boxes}
		}
	}
}

// tryOnePass scans every ordered pair once, applying and accepting the
// first improving swap it finds, then returns true to signal the
// caller should restart the scan from a freshly sorted order. It
// returns false if no pair in the whole pass improved anything.
func (wr WeightRedistributor) tryOnePass(boxes *[]PackedBox, quantities Quantities) bool {
	n := len(*boxes)
	for ai := 0; ai < n; ai++ {
		for bi := 0; bi < n; bi++ {
			if ai == bi {
				continue
			}
			A, B := (*boxes)[ai], (*boxes)[bi]
			if A.TotalWeight() <= B.TotalWeight() {
				continue
			}
			target := PackedBoxList{Boxes: *boxes}.MeanItemWeight()

			for idx, item := range A.Items {
				if float64(item.Weight())+float64(B.TotalItemWeight()) > target {
					continue
				}

				bItems := append(itemsOf(B.Items), item.Item())
				newB, ok := wr.localRepack(bItems, B.Box.ID, quantities)
				if !ok {
					wr.packer.log.Debug("swap rejected", map[string]any{
						"item_id": item.Item().ID, "reason": "target box could not re-pack",
					})
					continue
				}

				if len(A.Items) == 1 {
					quantities[A.Box.ID]++
					quantities[B.Box.ID]++
					quantities[newB.Box.ID]--
					*boxes = removeAndReplace(*boxes, ai, bi, newB)
					wr.packer.log.Debug("swap accepted", map[string]any{
						"item_id": item.Item().ID, "from_box": string(A.Box.ID), "to_box": string(newB.Box.ID),
					})
					return true
				}

				remainingA := append(append([]PackedItem{}, A.Items[:idx]...), A.Items[idx+1:]...)
				newA, ok := wr.localRepack(itemsOf(remainingA), A.Box.ID, quantities)
				if !ok {
					wr.packer.log.Debug("swap rejected", map[string]any{
						"item_id": item.Item().ID, "reason": "source box could not re-pack remainder",
					})
					continue
				}

				oldVar := populationVariance([]float64{float64(A.TotalWeight()), float64(B.TotalWeight())})
				newVar := populationVariance([]float64{float64(newA.TotalWeight()), float64(newB.TotalWeight())})
				if newVar >= oldVar {
					wr.packer.log.Debug("swap rejected", map[string]any{
						"item_id": item.Item().ID, "reason": "did not reduce weight variance",
					})
					continue
				}

				quantities[A.Box.ID]++
				quantities[B.Box.ID]++
				quantities[newA.Box.ID]--
				quantities[newB.Box.ID]--
				(*boxes)[ai] = newA
				(*boxes)[bi] = newB
				wr.packer.log.Debug("swap accepted", map[string]any{
					"item_id": item.Item().ID, "from_box": string(A.Box.ID), "to_box": string(B.Box.ID),
				})
				return true
			}
		}
	}
	return false
}

// localRepack re-packs items against the full box catalog, treating
// currentBoxID's quantity as sufficiently large for the duration of
// this call, per the spec's documented "currently-held slot is
// returnable" semantics. It succeeds only if the result is exactly one
// box.
func (wr WeightRedistributor) localRepack(items []Item, currentBoxID BoxID, quantities Quantities) (PackedBox, bool) {
	local := quantities.Clone()
	local[currentBoxID] = math.MaxInt32

	localPacker := NewPacker(wr.packer.boxes, WithSinglePass(true), WithLogSink(wr.packer.log))
	result, err := localPacker.Pack(items, local)
	if err != nil || result.Count() != 1 {
		return PackedBox{}, false
	}
	return result.Boxes[0], true
}

func itemsOf(items []PackedItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Item()
	}
	return out
}

func removeAndReplace(boxes []PackedBox, removeIdx, replaceIdx int, replacement PackedBox) []PackedBox {
	out := make([]PackedBox, 0, len(boxes)-1)
	for i, b := range boxes {
		switch i {
		case removeIdx:
			continue
		case replaceIdx:
			out = append(out, replacement)
		default:
			out = append(out, b)
		}
	}
	return out
}

func sortBoxesByWeightDesc(boxes []PackedBox) {
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].TotalWeight() > boxes[j].TotalWeight()
	})
}
