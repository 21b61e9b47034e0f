package layout

import (
	"time"

	"github.com/riverlane-tools/riverlane/pkg/geometry"
	"github.com/riverlane-tools/riverlane/pkg/model"
)

// NodeBox is one entity's placed rectangle.
type NodeBox struct {
	ID      string      `json:"id"`
	Label   string      `json:"label"`
	ChainID string      `json:"chain_id"`
	Lane    int         `json:"lane"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Active  bool        `json:"active"`
	Eras    []model.Era `json:"eras,omitempty"`
}

// LinkPath is one lineage connector with its drawable curve.
type LinkPath struct {
	SourceID string        `json:"source_id"`
	TargetID string        `json:"target_id"`
	Year     int           `json:"year"`
	Type     string        `json:"type"`
	Path     geometry.Path `json:"path"`
	SVGPath  string        `json:"svg_path"`
}

// YearRange is the resolved global year range of the diagram.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ScaleInfo carries the resolved year-to-pixel mapping parameters, so a
// renderer can place its own marks (grid lines, tick labels) on the same axis
// the boxes and connectors were computed against.
type ScaleInfo struct {
	YearMin int     `json:"year_min"`
	YearMax int     `json:"year_max"`
	Padding float64 `json:"padding"`
	Width   float64 `json:"width"`
	Stretch float64 `json:"stretch"`
}

// X maps a year to its pixel coordinate, identically to the scale the layout
// was computed with.
func (s ScaleInfo) X(year int) float64 {
	span := s.YearMax - s.YearMin
	if span < 1 {
		span = 1
	}
	return s.Padding + (float64(year-s.YearMin)/float64(span))*s.Width*s.Stretch
}

// Stats summarizes one computation for diagnostics and the CLI inspect
// command.
type Stats struct {
	Families       int           `json:"families"`
	Chains         int           `json:"chains"`
	DroppedLinks   int           `json:"dropped_links"`
	SeededFamilies int           `json:"seeded_families"`
	Cost           float64       `json:"cost"`
	Duration       time.Duration `json:"duration"`
}

// Result is a computed layout: placed entity boxes, link connectors, and the
// derived coordinate system.
type Result struct {
	Nodes     []NodeBox  `json:"nodes"`
	Links     []LinkPath `json:"links"`
	Years     YearRange  `json:"years"`
	Scale     ScaleInfo  `json:"scale"`
	LaneCount int        `json:"lane_count"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Stats     Stats      `json:"stats"`
}
