package lane

import (
	"testing"

	"github.com/riverlane-tools/riverlane/pkg/model"
)

// crossedFamily is four contemporaneous chains seeded so that the children
// sit far from their parents; a single lane exchange untangles it. All spans
// overlap, so every chain needs its own lane.
func crossedFamily(t *testing.T) *Engine {
	e := newTestEngine(t, attractionOnly(),
		[]model.Node{
			testNode("p1", 1900, 2000),
			testNode("p2", 1900, 2000),
			testNode("c1", 1900, 2000),
			testNode("c2", 1900, 2000),
		},
		[]model.Link{
			testLink("p1", "c1", 1950, model.LinkTransfer),
			testLink("p2", "c2", 1950, model.LinkTransfer),
			testLink("p1", "c2", 1950, model.LinkTransfer),
		},
	)
	if err := e.Seed(map[string]int{"p1": 0, "p2": 1, "c2": 2, "c1": 3}); err != nil {
		t.Fatalf("Seed() = %v", err)
	}
	return e
}

func TestPairwiseSwap_ExchangesExactlyTwoLanes(t *testing.T) {
	e := crossedFamily(t)
	before := e.Lanes()
	costBefore := e.FamilyCost()

	if !e.pairwiseSwapPass() {
		t.Fatal("pairwiseSwapPass() = false, want an applied swap")
	}

	after := e.Lanes()
	var changed []string
	for id := range before {
		if before[id] != after[id] {
			changed = append(changed, id)
		}
	}
	if len(changed) != 2 {
		t.Fatalf("swap changed %d chains (%v), want 2", len(changed), changed)
	}
	a, b := changed[0], changed[1]
	if after[a] != before[b] || after[b] != before[a] {
		t.Errorf("lanes not exchanged: %s %d->%d, %s %d->%d",
			a, before[a], after[a], b, before[b], after[b])
	}
	if costAfter := e.FamilyCost(); costAfter >= costBefore {
		t.Errorf("FamilyCost() = %f after swap, want < %f", costAfter, costBefore)
	}
	assertFeasible(t, e)
}

func TestPairwiseSwap_PicksBestPair(t *testing.T) {
	e := crossedFamily(t)
	if !e.pairwiseSwapPass() {
		t.Fatal("pairwiseSwapPass() = false, want an applied swap")
	}

	// Untangling c1 and p2 is the first of the tied-best exchanges in
	// enumeration order.
	lanes := e.Lanes()
	want := map[string]int{"p1": 0, "c1": 1, "c2": 2, "p2": 3}
	for id, lane := range want {
		if lanes[id] != lane {
			t.Errorf("lane of %s = %d, want %d", id, lanes[id], lane)
		}
	}
}

func TestPairwiseSwap_NoImprovementIsNoop(t *testing.T) {
	e := forkFamily(t, attractionOnly())
	// Already optimal: the parent centered between its children.
	if err := e.Seed(map[string]int{"a": 1, "b": 0, "c": 2}); err != nil {
		t.Fatalf("Seed() = %v", err)
	}
	before := e.Lanes()

	if e.pairwiseSwapPass() {
		t.Error("pairwiseSwapPass() = true on an optimal layout, want false")
	}
	after := e.Lanes()
	for id := range before {
		if before[id] != after[id] {
			t.Errorf("lane of %s changed %d -> %d without improvement", id, before[id], after[id])
		}
	}
}

func TestSwapLanes_RestoresOnRoundTrip(t *testing.T) {
	e := crossedFamily(t)
	before := e.Lanes()

	if !e.swapLanes("p1", "c1") {
		t.Fatal("swapLanes() = false, want true")
	}
	if !e.swapLanes("p1", "c1") {
		t.Fatal("swapLanes() back = false, want true")
	}

	after := e.Lanes()
	for id := range before {
		if before[id] != after[id] {
			t.Errorf("lane of %s = %d after round trip, want %d", id, after[id], before[id])
		}
	}
	assertFeasible(t, e)
}
