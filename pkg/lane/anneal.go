package lane

import "math"

// AnnealResult summarizes one simulated-annealing attempt.
type AnnealResult struct {
	Improved  bool    // final cost is strictly below the starting cost
	Accepted  int     // moves applied, including Metropolis-accepted worsening ones
	FinalCost float64 // family cost after the attempt
}

// annealPass runs simulated annealing over the family: random single-chain
// relocations within a lane region around the current assignment, accepted by
// the Metropolis criterion with a geometrically cooling temperature.
//
// Worsening moves are accepted with probability exp(-delta/T) to escape
// local minima the greedy operators are stuck in. The best assignment seen
// is snapshotted throughout and restored at the end, so the attempt can
// never leave the family worse than it started.
func (e *Engine) annealPass() AnnealResult {
	a := e.cfg.Annealing
	e.total = e.FamilyCost()
	startCost := e.total

	bestLanes := e.Lanes()
	bestCost := e.total

	lo, hi := e.laneBounds()
	lo -= a.Radius
	if lo < 0 {
		lo = 0
	}
	hi += a.Radius
	span := hi - lo + 1

	accepted := 0
	temp := a.InitialTemp
	for it := 0; it < a.MaxIterations; it++ {
		id := e.family.Chains[e.rng.Intn(e.family.Size())]
		target := lo + e.rng.Intn(span)

		dg, _, ok := e.evalMove(id, target)
		if ok && (dg < -costEpsilon || e.rng.Float64() < math.Exp(-dg/temp)) {
			e.applyMove(id, target, dg)
			accepted++
			if e.total < bestCost-costEpsilon {
				bestCost = e.total
				bestLanes = e.Lanes()
			}
		}
		temp *= a.CoolingRate
	}

	if e.total > bestCost+costEpsilon {
		e.restore(bestLanes, bestCost)
	}
	return AnnealResult{
		Improved:  e.total < startCost-costEpsilon,
		Accepted:  accepted,
		FinalCost: e.total,
	}
}

// laneBounds returns the lowest and highest lane currently assigned.
func (e *Engine) laneBounds() (lo, hi int) {
	first := true
	for _, lane := range e.lanes {
		if first || lane < lo {
			lo = lane
		}
		if first || lane > hi {
			hi = lane
		}
		first = false
	}
	return lo, hi
}

// restore rebuilds occupancy and lane state from a snapshot taken while that
// assignment was live, so every placement is known feasible.
func (e *Engine) restore(lanes map[string]int, cost float64) {
	e.slots = NewSlots()
	e.lanes = make(map[string]int, len(lanes))
	for _, id := range e.family.Chains {
		c := e.mustChain(id)
		if err := e.slots.Place(id, lanes[id], Interval{Start: c.Start, End: c.End}); err != nil {
			panic("lane: snapshot restore failed")
		}
		e.lanes[id] = lanes[id]
	}
	e.total = cost
}
