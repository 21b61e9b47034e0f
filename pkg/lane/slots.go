// Package lane implements the lane assignment engine: the combinatorial
// optimizer that places each chain into a discrete horizontal lane so that
// crossings, cut-throughs, lane crowding, and parent/child separation are
// jointly minimized.
//
// The engine operates on one family at a time. It builds an initial greedy
// placement, then refines it through a configurable schedule of local-search
// passes: greedy repositioning, pairwise swaps, rigid group translation, and
// a simulated-annealing fallback for escaping plateaus. Every operator obeys
// a single acceptance rule - a move is durably applied only if it does not
// increase the family's total cost - so layout quality is monotone across
// the schedule.
//
// All trial mutations go through apply/revert patch pairs, and cost deltas
// are computed over the bounded set of chains a move can actually affect
// rather than the whole family. Both properties are load-bearing: the first
// guarantees rejected trials leave no residue, the second keeps interactive
// recompute within frame budgets.
package lane

import (
	"errors"
	"slices"
)

var (
	// ErrLaneOccupied is returned by [Slots.Place] when the target lane
	// already holds an occupant whose time interval overlaps the new one.
	ErrLaneOccupied = errors.New("lane occupied for interval")

	// ErrUnknownOccupant is returned by [Slots.Remove] when the chain is not
	// placed in the given lane. This indicates corrupted bookkeeping.
	ErrUnknownOccupant = errors.New("unknown occupant")

	// ErrNegativeLane is returned when a placement targets a lane below 0.
	ErrNegativeLane = errors.New("negative lane index")
)

// Interval is an inclusive year range.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two intervals intersect.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start <= o.End && o.Start <= iv.End
}

// Gap returns the number of years separating two non-overlapping intervals,
// or 0 if they overlap.
func (iv Interval) Gap(o Interval) int {
	switch {
	case iv.Overlaps(o):
		return 0
	case iv.End < o.Start:
		return o.Start - iv.End
	default:
		return iv.Start - o.End
	}
}

// occupant is one (interval, chain) entry in a lane.
type occupant struct {
	chain string
	iv    Interval
}

// Slots is the lane occupancy map ("ySlots"): lane index to the chains
// currently drawn there. The invariant is that no two occupants of the same
// lane have overlapping time intervals - lane sharing is allowed only for
// disjoint intervals.
type Slots struct {
	lanes map[int][]occupant
}

// NewSlots creates an empty occupancy map.
func NewSlots() *Slots {
	return &Slots{lanes: make(map[int][]occupant)}
}

// CanPlace reports whether the interval fits into the lane without
// overlapping any occupant other than exclude.
func (s *Slots) CanPlace(lane int, iv Interval, exclude string) bool {
	if lane < 0 {
		return false
	}
	for _, o := range s.lanes[lane] {
		if o.chain != exclude && o.iv.Overlaps(iv) {
			return false
		}
	}
	return true
}

// Place inserts the chain into the lane.
func (s *Slots) Place(chainID string, lane int, iv Interval) error {
	if lane < 0 {
		return ErrNegativeLane
	}
	if !s.CanPlace(lane, iv, chainID) {
		return ErrLaneOccupied
	}
	s.lanes[lane] = append(s.lanes[lane], occupant{chain: chainID, iv: iv})
	return nil
}

// Remove deletes the chain from the lane.
func (s *Slots) Remove(chainID string, lane int) error {
	occ := s.lanes[lane]
	for i, o := range occ {
		if o.chain == chainID {
			s.lanes[lane] = slices.Delete(occ, i, i+1)
			if len(s.lanes[lane]) == 0 {
				delete(s.lanes, lane)
			}
			return nil
		}
	}
	return ErrUnknownOccupant
}

// Collisions counts occupants of the lane whose interval overlaps iv,
// excluding the named chain. This is the default collision predicate for
// cut-through costing.
func (s *Slots) Collisions(lane int, iv Interval, exclude string) int {
	n := 0
	for _, o := range s.lanes[lane] {
		if o.chain != exclude && o.iv.Overlaps(iv) {
			n++
		}
	}
	return n
}

// MinGap returns the smallest temporal gap between iv and any non-overlapping
// occupant of the lane (excluding the named chain), and whether such an
// occupant exists.
func (s *Slots) MinGap(lane int, iv Interval, exclude string) (gap int, found bool) {
	for _, o := range s.lanes[lane] {
		if o.chain == exclude || o.iv.Overlaps(iv) {
			continue
		}
		g := o.iv.Gap(iv)
		if !found || g < gap {
			gap, found = g, true
		}
	}
	return gap, found
}

// SharedOccupants returns the chains sharing the lane with iv at a temporal
// gap of at most maxGap years, excluding the named chain and any overlapping
// occupant.
func (s *Slots) SharedOccupants(lane int, iv Interval, exclude string, maxGap int) []string {
	var ids []string
	for _, o := range s.lanes[lane] {
		if o.chain == exclude || o.iv.Overlaps(iv) {
			continue
		}
		if o.iv.Gap(iv) <= maxGap {
			ids = append(ids, o.chain)
		}
	}
	return ids
}

// MaxLane returns the highest occupied lane index, or -1 if empty.
func (s *Slots) MaxLane() int {
	max := -1
	for lane := range s.lanes {
		if lane > max {
			max = lane
		}
	}
	return max
}

// =============================================================================
// Patches - Transactional Moves
// =============================================================================

// Patch records a single applied lane move so it can be reverted exactly.
// Operators obtain patches from [Slots.Move] and undo rejected trials with
// [Slots.Revert]; tests verify that revert restores the pre-move state.
type Patch struct {
	Chain string
	From  int
	To    int
	iv    Interval
}

// Move relocates a chain between lanes and returns the patch describing the
// move. On error the occupancy map is unchanged.
func (s *Slots) Move(chainID string, from, to int, iv Interval) (Patch, error) {
	if from == to {
		return Patch{Chain: chainID, From: from, To: to, iv: iv}, nil
	}
	if !s.CanPlace(to, iv, chainID) {
		return Patch{}, ErrLaneOccupied
	}
	if err := s.Remove(chainID, from); err != nil {
		return Patch{}, err
	}
	// Cannot fail: feasibility was checked above and Remove only shrank the
	// target lane's occupancy if from == to, which was handled already.
	s.lanes[to] = append(s.lanes[to], occupant{chain: chainID, iv: iv})
	return Patch{Chain: chainID, From: from, To: to, iv: iv}, nil
}

// Revert undoes a move produced by [Slots.Move], applying its exact inverse.
func (s *Slots) Revert(p Patch) error {
	if p.From == p.To {
		return nil
	}
	if err := s.Remove(p.Chain, p.To); err != nil {
		return err
	}
	s.lanes[p.From] = append(s.lanes[p.From], occupant{chain: p.Chain, iv: p.iv})
	return nil
}
