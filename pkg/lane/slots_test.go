package lane

import (
	"errors"
	"testing"
)

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{1900, 1950}, Interval{1951, 2000}, false},
		{"touching boundary year", Interval{1900, 1950}, Interval{1950, 2000}, true},
		{"nested", Interval{1900, 2000}, Interval{1920, 1930}, true},
		{"identical", Interval{1900, 1950}, Interval{1900, 1950}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestInterval_Gap(t *testing.T) {
	a := Interval{1900, 1940}
	b := Interval{1950, 2000}
	if got := a.Gap(b); got != 10 {
		t.Errorf("Gap() = %d, want 10", got)
	}
	if got := b.Gap(a); got != 10 {
		t.Errorf("Gap() reversed = %d, want 10", got)
	}
	if got := a.Gap(Interval{1930, 1960}); got != 0 {
		t.Errorf("Gap() overlapping = %d, want 0", got)
	}
}

func TestSlots_PlaceRejectsOverlap(t *testing.T) {
	s := NewSlots()
	if err := s.Place("a", 0, Interval{1900, 1950}); err != nil {
		t.Fatalf("Place(a) = %v, want nil", err)
	}
	err := s.Place("b", 0, Interval{1940, 2000})
	if !errors.Is(err, ErrLaneOccupied) {
		t.Errorf("Place(b) = %v, want ErrLaneOccupied", err)
	}
}

func TestSlots_PlaceSharesLaneForDisjointIntervals(t *testing.T) {
	s := NewSlots()
	if err := s.Place("a", 0, Interval{1900, 1940}); err != nil {
		t.Fatalf("Place(a) = %v, want nil", err)
	}
	if err := s.Place("b", 0, Interval{1950, 2000}); err != nil {
		t.Errorf("Place(b) = %v, want nil", err)
	}
}

func TestSlots_PlaceRejectsNegativeLane(t *testing.T) {
	s := NewSlots()
	if err := s.Place("a", -1, Interval{1900, 1950}); !errors.Is(err, ErrNegativeLane) {
		t.Errorf("Place() = %v, want ErrNegativeLane", err)
	}
}

func TestSlots_MoveRevertRestoresState(t *testing.T) {
	s := NewSlots()
	iv := Interval{1900, 1950}
	if err := s.Place("a", 0, iv); err != nil {
		t.Fatalf("Place() = %v", err)
	}

	p, err := s.Move("a", 0, 2, iv)
	if err != nil {
		t.Fatalf("Move() = %v, want nil", err)
	}
	if s.CanPlace(2, iv, "") {
		t.Error("CanPlace(2) = true after move, want false")
	}
	if !s.CanPlace(0, iv, "") {
		t.Error("CanPlace(0) = false after move, want true")
	}

	if err := s.Revert(p); err != nil {
		t.Fatalf("Revert() = %v, want nil", err)
	}
	if !s.CanPlace(2, iv, "") {
		t.Error("CanPlace(2) = false after revert, want true")
	}
	if s.CanPlace(0, iv, "") {
		t.Error("CanPlace(0) = true after revert, want false")
	}
}

func TestSlots_MoveToOccupiedLaneFails(t *testing.T) {
	s := NewSlots()
	ivA := Interval{1900, 1950}
	ivB := Interval{1940, 2000}
	if err := s.Place("a", 0, ivA); err != nil {
		t.Fatalf("Place(a) = %v", err)
	}
	if err := s.Place("b", 1, ivB); err != nil {
		t.Fatalf("Place(b) = %v", err)
	}

	if _, err := s.Move("a", 0, 1, ivA); !errors.Is(err, ErrLaneOccupied) {
		t.Errorf("Move() = %v, want ErrLaneOccupied", err)
	}
	// Failed move must leave the map untouched.
	if s.CanPlace(0, ivA, "") {
		t.Error("lane 0 vacated by failed move")
	}
}

func TestSlots_Collisions(t *testing.T) {
	s := NewSlots()
	_ = s.Place("a", 1, Interval{1900, 1950})
	_ = s.Place("b", 1, Interval{1960, 2000})

	if got := s.Collisions(1, Interval{1940, 1970}, ""); got != 2 {
		t.Errorf("Collisions() = %d, want 2", got)
	}
	if got := s.Collisions(1, Interval{1940, 1970}, "a"); got != 1 {
		t.Errorf("Collisions() excluding a = %d, want 1", got)
	}
	if got := s.Collisions(1, Interval{1951, 1959}, ""); got != 0 {
		t.Errorf("Collisions() disjoint = %d, want 0", got)
	}
}

func TestSlots_SharedOccupants(t *testing.T) {
	s := NewSlots()
	_ = s.Place("near", 0, Interval{1900, 1940})
	_ = s.Place("far", 0, Interval{2000, 2050})

	got := s.SharedOccupants(0, Interval{1950, 1990}, "", 30)
	if len(got) != 1 || got[0] != "near" {
		t.Errorf("SharedOccupants() = %v, want [near]", got)
	}
}

func TestSlots_MaxLane(t *testing.T) {
	s := NewSlots()
	if got := s.MaxLane(); got != -1 {
		t.Errorf("MaxLane() empty = %d, want -1", got)
	}
	_ = s.Place("a", 4, Interval{1900, 1950})
	if got := s.MaxLane(); got != 4 {
		t.Errorf("MaxLane() = %d, want 4", got)
	}
	if err := s.Remove("a", 4); err != nil {
		t.Fatalf("Remove() = %v", err)
	}
	if got := s.MaxLane(); got != -1 {
		t.Errorf("MaxLane() after removal = %d, want -1", got)
	}
}

func TestSlots_RemoveUnknown(t *testing.T) {
	s := NewSlots()
	if err := s.Remove("ghost", 0); !errors.Is(err, ErrUnknownOccupant) {
		t.Errorf("Remove() = %v, want ErrUnknownOccupant", err)
	}
}
