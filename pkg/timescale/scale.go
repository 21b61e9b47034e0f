// Package timescale maps calendar years onto a one-dimensional pixel axis.
//
// The scale derives a global year range from all entity lifespans and era
// markers, then exposes a strictly increasing year→pixel function. Degenerate
// inputs (empty node sets, single-point ranges, zero-width containers) are
// clamped rather than rejected: the scale never produces NaN or infinite
// coordinates.
package timescale

import "github.com/riverlane-tools/riverlane/pkg/model"

// FloorYear is the lower bound folded into every derived year range. The
// diagrams this engine serves begin no earlier than 1900, and anchoring the
// range there keeps sparse modern-only datasets from collapsing to a sliver.
const FloorYear = 1900

// Options configures scale construction. The zero value is usable; Build
// applies the documented defaults.
type Options struct {
	// Width is the available horizontal pixel width. Clamped to >= 1.
	Width float64

	// Padding is the left inset in pixels before the first year.
	Padding float64

	// Stretch multiplies the effective width (zoom factor). Values <= 0
	// default to 1.
	Stretch float64

	// MinNodeWidth is the pixel floor applied to active (undissolved)
	// entities. Dissolved entities always get their exact year extent.
	MinNodeWidth float64

	// CurrentYear caps open-ended lifespans. Zero means the caller did not
	// supply one and Build uses the year range's upper bound instead.
	CurrentYear int

	// YearRange overrides the derived range when both values are non-zero.
	YearRange [2]int
}

// Scale maps years to pixels across a derived global year range.
// Construct with [Build]; the zero value maps everything to Padding.
type Scale struct {
	YearMin int
	YearMax int

	padding      float64
	width        float64
	stretch      float64
	minNodeWidth float64
}

// Build derives the global year range from the nodes and returns the scale.
//
// The range is (min(1900, all founding/era/dissolution years),
// max(all such years, currentYear) + 1). The span is clamped to at least one
// year so a degenerate range still yields finite coordinates.
func Build(nodes []model.Node, currentYear int, opts Options) Scale {
	yearMin := FloorYear
	yearMax := currentYear

	for _, n := range nodes {
		if n.Founded < yearMin {
			yearMin = n.Founded
		}
		if n.Founded > yearMax {
			yearMax = n.Founded
		}
		if !n.Active() && n.Dissolved > yearMax {
			yearMax = n.Dissolved
		}
		for _, e := range n.Eras {
			if e.Year < yearMin {
				yearMin = e.Year
			}
			if e.Year > yearMax {
				yearMax = e.Year
			}
		}
	}
	yearMax++ // one year of headroom past the latest event

	if opts.YearRange[0] != 0 || opts.YearRange[1] != 0 {
		yearMin, yearMax = opts.YearRange[0], opts.YearRange[1]
	}
	if yearMax <= yearMin {
		yearMax = yearMin + 1
	}

	width := opts.Width
	if width < 1 {
		width = 1
	}
	stretch := opts.Stretch
	if stretch <= 0 {
		stretch = 1
	}

	return Scale{
		YearMin:      yearMin,
		YearMax:      yearMax,
		padding:      opts.Padding,
		width:        width,
		stretch:      stretch,
		minNodeWidth: opts.MinNodeWidth,
	}
}

// X maps a year to its pixel coordinate. The mapping is strictly increasing
// in the year and finite for any input.
func (s Scale) X(year int) float64 {
	span := s.YearMax - s.YearMin
	if span < 1 {
		span = 1
	}
	return s.padding + (float64(year-s.YearMin)/float64(span))*s.width*s.stretch
}

// NodeSpan returns the pixel extent (x, width) of an entity's lifespan.
//
// Dissolved entities span exactly x(dissolution+1) - x(founding) with no
// width floor. Active entities extend to x(yearMax) and are floored at
// MinNodeWidth so short-lived active entities stay visible.
func (s Scale) NodeSpan(n model.Node) (x, width float64) {
	x = s.X(n.Founded)
	if n.Active() {
		width = s.X(s.YearMax) - x
		if width < s.minNodeWidth {
			width = s.minNodeWidth
		}
		return x, width
	}
	return x, s.X(n.Dissolved+1) - x
}
