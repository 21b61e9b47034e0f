package lane

// CollisionFunc decides how many occupants of an intermediate lane count as
// cut-through collisions for a chain's interval. The default is
// [Slots.Collisions] (any temporal overlap); callers can supply a stricter
// predicate, e.g. one that ignores occupants sharing a boundary year.
type CollisionFunc func(s *Slots, lane int, iv Interval, exclude string) int

// PlacementCost computes the cost of placing the chain at the candidate lane
// given the current lanes of every other chain in the family.
//
// The function is pure: it never mutates the occupancy map or lane table,
// which is what makes delta evaluation trustworthy. The chain's own current
// lane is ignored - the placement is evaluated as if the chain stood at the
// candidate lane while everything else stays put.
//
// Cost terms, all weighted and non-negative:
//
//   - attraction: quadratic penalty for lane distance to each direct parent
//     and child, pulling causally related chains together
//   - lane sharing / tight gap: additive penalties for sharing the lane with
//     a temporally close occupant
//   - cut-through: per occupied lane strictly between the chain and a linked
//     chain during the chain's time span
//   - blocker: per unrelated vertical segment crossing the candidate lane
//     while the chain exists
//   - Y-shape: merge-parents of a shared child squeezed within the configured
//     lane radius
func (e *Engine) PlacementCost(id string, candidate int) float64 {
	c := e.mustChain(id)
	iv := Interval{Start: c.Start, End: c.End}
	w := e.cfg.Weights
	cost := 0.0

	// Attraction toward direct parents and children.
	for _, p := range e.graph.Parents(id) {
		if other, ok := e.lanes[p]; ok {
			d := float64(candidate - other)
			cost += w.Attraction * d * d
		}
	}
	for _, ch := range e.graph.Children(id) {
		if other, ok := e.lanes[ch]; ok {
			d := float64(candidate - other)
			cost += w.Attraction * d * d
		}
	}

	// Lane sharing and tight-gap penalties are additive per occupant.
	for _, shared := range e.slots.SharedOccupants(candidate, iv, id, w.ShareGapYears) {
		cost += w.LaneSharing
		if sc := e.mustChain(shared); iv.Gap(Interval{Start: sc.Start, End: sc.End}) <= w.TightGapYears {
			cost += w.TightGap
		}
	}

	// Cut-through: connectors to linked chains crossing occupied lanes.
	for _, linked := range e.linkedChains(id) {
		other, ok := e.lanes[linked]
		if !ok {
			continue
		}
		lo, hi := candidate, other
		if lo > hi {
			lo, hi = hi, lo
		}
		for l := lo + 1; l < hi; l++ {
			cost += w.CutThrough * float64(e.collide(e.slots, l, iv, id))
		}
	}

	// Blocker: vertical segments of unrelated links crossing this lane during
	// the chain's span. A chain is never penalized by its own incident links.
	for _, l := range e.family.Links {
		if l.Parent == id || l.Child == id {
			continue
		}
		pl, okP := e.lanes[l.Parent]
		cl, okC := e.lanes[l.Child]
		if !okP || !okC {
			continue
		}
		lo, hi := pl, cl
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= candidate && candidate <= hi && iv.Start <= l.Year && l.Year <= iv.End {
			cost += w.Blocker
		}
	}

	// Y-shape: discourage squeezing unrelated merge-parents together.
	for _, child := range e.graph.Children(id) {
		for _, spouse := range e.graph.Parents(child) {
			if spouse == id {
				continue
			}
			if other, ok := e.lanes[spouse]; ok && abs(candidate-other) <= w.YShapeRadius {
				cost += w.YShape
			}
		}
	}

	return cost
}

// FamilyCost returns the total cost of the family's current placement.
func (e *Engine) FamilyCost() float64 {
	total := 0.0
	for _, id := range e.family.Chains {
		total += e.PlacementCost(id, e.lanes[id])
	}
	return total
}

// linkedChains returns the chain's direct parents and children.
func (e *Engine) linkedChains(id string) []string {
	parents := e.graph.Parents(id)
	children := e.graph.Children(id)
	out := make([]string, 0, len(parents)+len(children))
	out = append(out, parents...)
	out = append(out, children...)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
