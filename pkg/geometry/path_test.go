package geometry

import (
	"math"
	"testing"
)

func TestConnector_ControlPointsOffsetHorizontally(t *testing.T) {
	p := Connector(Point{X: 100, Y: 50}, Point{X: 200, Y: 150})

	if p.C1.X != 130 || p.C1.Y != 50 {
		t.Errorf("C1 = %v, want (130, 50)", p.C1)
	}
	if p.C2.X != 170 || p.C2.Y != 150 {
		t.Errorf("C2 = %v, want (170, 150)", p.C2)
	}
}

func TestConnector_EndpointsPreserved(t *testing.T) {
	start := Point{X: 10, Y: 20}
	end := Point{X: 300, Y: 80}
	p := Connector(start, end)

	if p.At(0) != start {
		t.Errorf("At(0) = %v, want %v", p.At(0), start)
	}
	if p.At(1) != end {
		t.Errorf("At(1) = %v, want %v", p.At(1), end)
	}
}

func TestConnector_MidpointCentered(t *testing.T) {
	p := Connector(Point{X: 0, Y: 0}, Point{X: 100, Y: 100})

	mid := p.At(0.5)
	if math.Abs(mid.X-50) > 1e-9 || math.Abs(mid.Y-50) > 1e-9 {
		t.Errorf("At(0.5) = %v, want (50, 50)", mid)
	}
}

func TestConnector_HorizontalLinkStaysFlat(t *testing.T) {
	p := Connector(Point{X: 0, Y: 40}, Point{X: 100, Y: 40})
	for _, tp := range []float64{0.25, 0.5, 0.75} {
		if got := p.At(tp).Y; math.Abs(got-40) > 1e-9 {
			t.Errorf("At(%f).Y = %f, want 40", tp, got)
		}
	}
}

func TestPath_SVG(t *testing.T) {
	p := Connector(Point{X: 100, Y: 50}, Point{X: 200, Y: 150})
	want := "M 100 50 C 130 50, 170 150, 200 150"
	if got := p.SVG(); got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
}

func TestPath_SVGFractionalCoordinates(t *testing.T) {
	p := Path{
		Start: Point{X: 1.5, Y: 2.25},
		C1:    Point{X: 3, Y: 2.25},
		C2:    Point{X: 4.125, Y: 6},
		End:   Point{X: 5.5, Y: 6},
	}
	want := "M 1.5 2.25 C 3 2.25, 4.13 6, 5.5 6"
	if got := p.SVG(); got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
}
