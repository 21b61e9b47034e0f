// Package geometry produces the drawable shapes of a layout: the cubic
// bezier connectors that carry links between lanes.
//
// Connectors always leave their source horizontally and arrive at their
// target horizontally, which is what makes the ribbons read as continuous
// flows rather than straight edges.
package geometry

import (
	"fmt"
	"strings"
)

// controlRatio is the fraction of the horizontal distance used as the
// control-point offset. Around a third gives the flattened S-curve the
// diagrams are drawn with; larger values bulge, smaller ones kink.
const controlRatio = 0.3

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is a single cubic bezier segment from Start to End.
type Path struct {
	Start Point `json:"start"`
	C1    Point `json:"c1"`
	C2    Point `json:"c2"`
	End   Point `json:"end"`
}

// Connector builds the bezier connecting a link's departure point to its
// arrival point. Both control points sit at the endpoints' heights, offset
// horizontally by [controlRatio] of the span, so the curve exits and enters
// flat.
func Connector(start, end Point) Path {
	dx := (end.X - start.X) * controlRatio
	return Path{
		Start: start,
		C1:    Point{X: start.X + dx, Y: start.Y},
		C2:    Point{X: end.X - dx, Y: end.Y},
		End:   end,
	}
}

// At evaluates the curve at parameter t in [0, 1].
func (p Path) At(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*p.Start.X + b1*p.C1.X + b2*p.C2.X + b3*p.End.X,
		Y: b0*p.Start.Y + b1*p.C1.Y + b2*p.C2.Y + b3*p.End.Y,
	}
}

// SVG renders the path as an SVG path datum ("M ... C ...").
func (p Path) SVG() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %s %s C %s %s, %s %s, %s %s",
		coord(p.Start.X), coord(p.Start.Y),
		coord(p.C1.X), coord(p.C1.Y),
		coord(p.C2.X), coord(p.C2.Y),
		coord(p.End.X), coord(p.End.Y),
	)
	return sb.String()
}

// coord formats a coordinate with two decimals, trimming trailing zeros so
// integral values render bare.
func coord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
