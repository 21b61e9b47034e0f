// Package model defines the input data model for the riverlane layout engine:
// entities ("nodes") with lifespans and eras, and the lineage links that
// connect them.
//
// Documents are supplied wholesale per layout request. Links whose endpoints
// cannot be resolved against the node set are invalid and are silently dropped
// before layout - they never surface as errors (see [Document.ResolvedLinks]).
package model

import (
	"cmp"
	"slices"
)

// Link event types.
const (
	LinkTransfer   = "transfer"   // Legal transfer of the organization
	LinkSuccession = "succession" // Spiritual succession without legal continuity
	LinkMerge      = "merge"      // Multiple predecessors merged into the successor
	LinkSplit      = "split"      // Predecessor split into multiple successors
)

// Era is a sub-period of an entity's lifespan with display attributes.
// Eras carry no layout semantics beyond contributing their year to the
// global year range.
type Era struct {
	Year  int    `json:"year" bson:"year"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Node is an entity occupying a horizontal lane across the years it existed.
// A zero Dissolved year means the entity is still active; its lifespan is
// open-ended and extends to the right edge of the diagram.
type Node struct {
	ID        string `json:"id" bson:"id"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	Founded   int    `json:"founding_year" bson:"founding_year"`
	Dissolved int    `json:"dissolution_year,omitempty" bson:"dissolution_year,omitempty"`
	Eras      []Era  `json:"eras,omitempty" bson:"eras,omitempty"`
}

// Active reports whether the entity has no dissolution year.
func (n Node) Active() bool { return n.Dissolved == 0 }

// EndYear returns the final year of the entity's lifespan, using currentYear
// for active entities. The lifespan is inclusive on both ends.
func (n Node) EndYear(currentYear int) int {
	if n.Active() {
		return currentYear
	}
	return n.Dissolved
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is a directed lineage event from a predecessor entity to a successor
// entity at a given year.
type Link struct {
	Source string `json:"source_id" bson:"source_id"`
	Target string `json:"target_id" bson:"target_id"`
	Year   int    `json:"year" bson:"year"`
	Type   string `json:"type" bson:"type"`
}

// Document is the complete input to a layout request.
type Document struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// NodeByID returns the node with the given ID and true, or a zero node and
// false if absent.
func (d *Document) NodeByID(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ResolvedLinks returns the links whose source and target both resolve to a
// node in the document, preserving input order. Unresolvable links are data
// integrity errors recovered by silent exclusion; the dropped count is
// returned for optional diagnostic logging.
func (d *Document) ResolvedLinks() (links []Link, dropped int) {
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = true
	}
	links = make([]Link, 0, len(d.Links))
	for _, l := range d.Links {
		if ids[l.Source] && ids[l.Target] {
			links = append(links, l)
		} else {
			dropped++
		}
	}
	return links, dropped
}

// SortNodes orders nodes by founding year, breaking ties by ID. Layout output
// is deterministic given a fixed node and link ordering; callers that build
// documents from unordered sources should sort before computing.
func (d *Document) SortNodes() {
	slices.SortFunc(d.Nodes, func(a, b Node) int {
		if c := cmp.Compare(a.Founded, b.Founded); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
