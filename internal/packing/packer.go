package packing

import "sort"

// PackedBoxList is the multiset of boxes produced by a packing call.
type PackedBoxList struct {
	Boxes []PackedBox
}

// Count returns the number of boxes in the list.
func (l PackedBoxList) Count() int { return len(l.Boxes) }

// TotalWeight returns the sum of every box's total weight.
func (l PackedBoxList) TotalWeight() int {
	total := 0
	for _, b := range l.Boxes {
		total += b.TotalWeight()
	}
	return total
}

// MeanItemWeight returns the sum of item weights divided by the number
// of boxes, i.e. the target payload per box used by WeightRedistributor.
func (l PackedBoxList) MeanItemWeight() float64 {
	if len(l.Boxes) == 0 {
		return 0
	}
	total := 0
	for _, b := range l.Boxes {
		total += b.TotalItemWeight()
	}
	return float64(total) / float64(len(l.Boxes))
}

// WeightVariance returns the population variance of per-box total
// weights.
func (l PackedBoxList) WeightVariance() float64 {
	return populationVariance(l.totalWeights())
}

func (l PackedBoxList) totalWeights() []float64 {
	out := make([]float64, len(l.Boxes))
	for i, b := range l.Boxes {
		out[i] = float64(b.TotalWeight())
	}
	return out
}

func populationVariance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(n)
}

// Mode selects the top-level operation a Packer performs.
type Mode int

const (
	// ModeVolume packs for minimum box count only.
	ModeVolume Mode = iota
	// ModeWeightBalanced packs, then rebalances weight across boxes.
	ModeWeightBalanced
)

// Option configures a Packer.
type Option func(*Packer)

// WithLogSink installs a diagnostic sink. The default is NoopSink.
func WithLogSink(sink LogSink) Option {
	return func(p *Packer) {
		if sink != nil {
			p.log = sink
		}
	}
}

// WithSinglePass disables box-rotation trials, the two-pass layer depth
// discovery, and layer stabilisation, trading packing quality for a
// single deterministic pass. Intended for the local re-pack calls made
// during weight redistribution, where repeated recursive trials would
// otherwise be expensive.
func WithSinglePass(singlePass bool) Option {
	return func(p *Packer) {
		p.singlePass = singlePass
	}
}

// SetLogSink overrides the diagnostic sink on an already-constructed
// Packer. Useful when the sink depends on state assembled after the
// packer itself, such as a service wiring its catalog and logger
// separately.
func (p *Packer) SetLogSink(sink LogSink) {
	if sink != nil {
		p.log = sink
	}
}

// Packer is the top-level multi-box packing loop.
type Packer struct {
	boxes      []Box
	volume     VolumePacker
	singlePass bool
	log        LogSink
}

// NewPacker builds a Packer over the given box catalog.
func NewPacker(boxes []Box, opts ...Option) *Packer {
	p := &Packer{
		boxes:  append([]Box(nil), boxes...),
		volume: NewVolumePacker(),
		log:    NoopSink{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pack packs items into the box catalog under quantities, for minimum
// box count only.
func (p *Packer) Pack(items []Item, quantities Quantities) (PackedBoxList, error) {
	return p.pack(items, quantities, ModeVolume)
}

// PackWithWeightBalance packs items and then rebalances weight across
// the resulting boxes via WeightRedistributor.
func (p *Packer) PackWithWeightBalance(items []Item, quantities Quantities) (PackedBoxList, error) {
	return p.pack(items, quantities, ModeWeightBalanced)
}

func (p *Packer) pack(items []Item, quantities Quantities, mode Mode) (PackedBoxList, error) {
	if err := p.validate(items, quantities); err != nil {
		return PackedBoxList{}, err
	}

	ordered := append([]Item(nil), items...)
	SortItems(ordered)

	available := quantities.Clone()
	result, err := p.runOuterLoop(ordered, available)
	if err != nil {
		return PackedBoxList{}, err
	}

	if mode == ModeWeightBalanced {
		redistributor := WeightRedistributor{packer: p}
		result = redistributor.Redistribute(result, available)
	}

	return result, nil
}

func (p *Packer) validate(items []Item, quantities Quantities) error {
	if len(items) == 0 {
		return invalidInput("no items to pack")
	}
	for _, it := range items {
		if it.Length <= 0 || it.Width <= 0 || it.Depth <= 0 {
			return invalidInput("item " + it.ID + " has a non-positive dimension")
		}
		if it.Weight < 0 {
			return invalidInput("item " + it.ID + " has negative weight")
		}

		maxPayload := 0
		for _, b := range p.boxes {
			if b.MaxPayload > maxPayload {
				maxPayload = b.MaxPayload
			}
		}
		if it.Weight > maxPayload {
			return invalidInput("item " + it.ID + " weight exceeds every box's max payload")
		}

		if !p.fitsAnyBox(it) {
			return itemTooLarge(it, "does not fit any box in the catalog regardless of orientation")
		}
		if it.PackingConstraint != nil && !p.fitsAnyBoxUnderConstraint(it) {
			return constraintViolation(it)
		}
	}
	return nil
}

// fitsAnyBox reports whether it has a legal orientation that fits
// inside at least one box's inner dimensions, ignoring quantity.
func (p *Packer) fitsAnyBox(it Item) bool {
	factory := OrientatedItemFactory{}
	for _, b := range p.boxes {
		if len(factory.PossibleOrientations(it, b.InnerWidth, b.InnerLength, b.InnerDepth)) > 0 {
			return true
		}
		swapped := b.swapped()
		if len(factory.PossibleOrientations(it, swapped.InnerWidth, swapped.InnerLength, swapped.InnerDepth)) > 0 {
			return true
		}
	}
	return false
}

// fitsAnyBoxUnderConstraint reports whether it, which is already known
// to fit some box geometrically, also survives its own PackingConstraint
// when offered the best possible case: an entirely empty box, placed at
// the origin. If even that best case is rejected, no catalog box can
// ever hold the item and the failure is the constraint's, not a lack of
// capacity.
func (p *Packer) fitsAnyBoxUnderConstraint(it Item) bool {
	factory := OrientatedItemFactory{}
	for _, b := range p.boxes {
		if _, ok := factory.BestFit(it, b.InnerWidth, b.InnerLength, b.InnerDepth, 0, 0, 0, nil, nil); ok {
			return true
		}
		swapped := b.swapped()
		if _, ok := factory.BestFit(it, swapped.InnerWidth, swapped.InnerLength, swapped.InnerDepth, 0, 0, 0, nil, nil); ok {
			return true
		}
	}
	return false
}

// trialResult is one candidate box's outcome against the current
// remainder, used only to select the winning candidate for this pass.
type trialResult struct {
	box       Box
	candidate int // index into the sorted candidate slice
	packed    PackedBox
	remaining []Item
}

func (p *Packer) runOuterLoop(remaining []Item, quantities Quantities) (PackedBoxList, error) {
	var result PackedBoxList

	for len(remaining) > 0 {
		candidates := p.candidateBoxes(remaining, quantities)
		if len(candidates) == 0 {
			return PackedBoxList{}, insufficientBoxes(len(remaining))
		}

		trials := make([]trialResult, len(candidates))
		for i, box := range candidates {
			packed, leftover := p.volume.Pack(remaining, box, p.singlePass)
			trials[i] = trialResult{box: box, candidate: i, packed: packed, remaining: leftover}
		}

		bestIdx := bestTrial(trials)
		if bestIdx < 0 || len(trials[bestIdx].packed.Items) == 0 {
			return PackedBoxList{}, insufficientBoxes(len(remaining))
		}

		chosen := trials[bestIdx]
		chosen = p.attemptShrink(chosen, candidates, quantities)

		result.Boxes = append(result.Boxes, chosen.packed)
		quantities[chosen.box.ID]--
		remaining = chosen.remaining

		p.log.Debug("packed box", map[string]any{
			"box_id":     string(chosen.box.ID),
			"item_count": len(chosen.packed.Items),
			"remaining":  len(remaining),
		})
	}

	return result, nil
}

// candidateBoxes returns catalog boxes with quantity remaining and a
// max payload sufficient for the lightest remaining item, sorted by
// inner volume descending (stable, so equal-volume boxes keep catalog
// order for determinism).
func (p *Packer) candidateBoxes(remaining []Item, quantities Quantities) []Box {
	lightest := remaining[0].Weight
	for _, it := range remaining {
		if it.Weight < lightest {
			lightest = it.Weight
		}
	}

	var candidates []Box
	for _, b := range p.boxes {
		if quantities[b.ID] > 0 && b.MaxPayload >= lightest {
			candidates = append(candidates, b)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].InnerVolume() > candidates[j].InnerVolume()
	})
	return candidates
}

// bestTrial picks the winning candidate: most items packed, then
// highest volume utilisation, then smallest empty weight, then stable
// candidate order.
func bestTrial(trials []trialResult) int {
	best := -1
	for i, t := range trials {
		if len(t.packed.Items) == 0 {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		if trialBetter(t, trials[best]) {
			best = i
		}
	}
	return best
}

func trialBetter(a, b trialResult) bool {
	ac, bc := len(a.packed.Items), len(b.packed.Items)
	if ac != bc {
		return ac > bc
	}
	au, bu := a.packed.VolumeUtilisation(), b.packed.VolumeUtilisation()
	if au != bu {
		return au > bu
	}
	if a.box.EmptyWeight != b.box.EmptyWeight {
		return a.box.EmptyWeight < b.box.EmptyWeight
	}
	return false
}

// attemptShrink, when the chosen box did not pack every remaining item
// and smaller candidates follow it in the sorted order, looks for the
// smallest-volume candidate that still fits exactly the item set the
// chosen box packed, and substitutes it in.
func (p *Packer) attemptShrink(chosen trialResult, candidates []Box, quantities Quantities) trialResult {
	if len(chosen.remaining) == 0 {
		return chosen
	}
	if chosen.candidate >= len(candidates)-1 {
		return chosen
	}

	itemSet := make([]Item, len(chosen.packed.Items))
	for i, pi := range chosen.packed.Items {
		itemSet[i] = pi.Item()
	}

	p.log.Debug("shrink attempted", map[string]any{
		"from_box":   string(chosen.box.ID),
		"item_count": len(itemSet),
	})

	smaller := candidates[chosen.candidate+1:]
	for i := len(smaller) - 1; i >= 0; i-- {
		box := smaller[i]
		if quantities[box.ID] <= 0 {
			continue
		}
		packed, leftover := p.volume.Pack(itemSet, box, p.singlePass)
		if len(leftover) == 0 {
			chosen.box = box
			chosen.packed = packed
			chosen.candidate = chosen.candidate + 1 + i
			p.log.Debug("shrink succeeded", map[string]any{
				"to_box": string(box.ID),
			})
			return chosen
		}
	}
	return chosen
}
