package lane

// pairwiseSwapPass evaluates exchanging the lanes of every pair of family
// chains and applies the single best exchange if it passes the acceptance
// rule. Returns whether a swap was applied.
//
// Pairs are enumerated in family order so the pass is deterministic. One
// pass applies at most one swap; the schedule's iteration count controls how
// many swaps a pass sequence can chain together.
func (e *Engine) pairwiseSwapPass() bool {
	ids := e.family.Chains

	bestA, bestB := "", ""
	bestGlobal, bestLocal := 0.0, 0.0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			dg, dl, ok := e.evalSwap(ids[i], ids[j])
			if !ok {
				continue
			}
			if dg < bestGlobal-costEpsilon || (dg <= bestGlobal+costEpsilon && dl < bestLocal) {
				bestA, bestB = ids[i], ids[j]
				bestGlobal, bestLocal = dg, dl
			}
		}
	}

	if bestA == "" || !accepts(bestGlobal, bestLocal) {
		return false
	}
	if !e.swapLanes(bestA, bestB) {
		return false
	}
	e.total += bestGlobal
	e.moves++
	return true
}

// evalSwap computes the cost deltas of exchanging the two chains' lanes,
// leaving the engine state untouched. dLocal is the combined cost change of
// the pair itself. Returns ok=false when the chains share a lane or the
// exchange is infeasible.
func (e *Engine) evalSwap(a, b string) (dGlobal, dLocal float64, ok bool) {
	la, lb := e.lanes[a], e.lanes[b]
	if la == lb {
		return 0, 0, false
	}

	aff := e.affectedPair(a, b)
	before := e.costOf(aff)
	localBefore := e.PlacementCost(a, la) + e.PlacementCost(b, lb)

	if !e.swapLanes(a, b) {
		return 0, 0, false
	}
	after := e.costOf(aff)
	localAfter := e.PlacementCost(a, lb) + e.PlacementCost(b, la)

	if !e.swapLanes(a, b) {
		// Swapping back into just-vacated lanes cannot fail.
		panic("lane: swap revert failed")
	}
	return after - before, localAfter - localBefore, true
}

// swapLanes exchanges the two chains' lanes, updating occupancy and the lane
// table together. On infeasibility the state is restored and false returned.
func (e *Engine) swapLanes(a, b string) bool {
	ca, cb := e.mustChain(a), e.mustChain(b)
	ivA := Interval{Start: ca.Start, End: ca.End}
	ivB := Interval{Start: cb.Start, End: cb.End}
	la, lb := e.lanes[a], e.lanes[b]

	// Lift both out first so each can land in the other's lane even when
	// their intervals overlap.
	if err := e.slots.Remove(a, la); err != nil {
		return false
	}
	if err := e.slots.Remove(b, lb); err != nil {
		_ = e.slots.Place(a, la, ivA)
		return false
	}
	if err := e.slots.Place(a, lb, ivA); err != nil {
		_ = e.slots.Place(a, la, ivA)
		_ = e.slots.Place(b, lb, ivB)
		return false
	}
	if err := e.slots.Place(b, la, ivB); err != nil {
		_ = e.slots.Remove(a, lb)
		_ = e.slots.Place(a, la, ivA)
		_ = e.slots.Place(b, lb, ivB)
		return false
	}
	e.lanes[a], e.lanes[b] = lb, la
	return true
}

// affectedPair unions the affected sets of both chains.
func (e *Engine) affectedPair(a, b string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range e.affected(a) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range e.affected(b) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
