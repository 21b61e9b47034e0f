// Package chain collapses entities connected by direct 1-to-1 successions
// into single layout units ("chains") and groups chains into independent
// families.
//
// Chains shrink the optimization problem: a sequence of entities where each
// link is the sole outgoing edge of its source and the sole incoming edge of
// its target renders as one continuous ribbon, so the lane optimizer treats
// it as one unit. Entities with multiple incoming or outgoing links become
// chain boundaries.
//
// Chains and families are derived fresh for every layout computation and
// discarded afterwards. Parent/child relations are held as chain-id indices
// into the graph's chain table, never as object references, which keeps the
// structures cycle-free and trivially serializable in tests.
package chain

import (
	"cmp"
	"slices"

	"github.com/riverlane-tools/riverlane/pkg/model"
)

// Chain is a maximal linear sequence of entities treated as one layout unit.
// Lane is the assigned swimlane index; it is the only mutable field and is
// written exclusively by the lane assignment engine.
type Chain struct {
	ID      string   // ID of the chain's root member
	Members []string // Member entity IDs in succession order
	Start   int      // Earliest founding year across members
	End     int      // Latest lifespan year across members (inclusive)
	Lane    int      // Assigned lane index (yIndex)
}

// Overlaps reports whether the chain's time span intersects [start, end].
// Spans are inclusive on both ends.
func (c *Chain) Overlaps(start, end int) bool {
	return c.Start <= end && start <= c.End
}

// Link is a lineage event lifted to chain granularity: a directed edge from
// the chain containing the link's source entity to the chain containing its
// target. Links fused inside a single chain are dropped during lifting.
type Link struct {
	Parent     string // Parent chain ID
	Child      string // Child chain ID
	Year       int    // Event year
	Type       string // model.LinkTransfer, LinkSuccession, LinkMerge, LinkSplit
	SourceNode string // Originating entity ID (for output links)
	TargetNode string // Receiving entity ID (for output links)
}

// Graph is the chain table with id-keyed parent/child adjacency.
type Graph struct {
	chains   map[string]*Chain
	order    []string // chain IDs ordered by start year, then ID
	parents  map[string][]string
	children map[string][]string
	links    []Link
	chainOf  map[string]string // entity ID -> chain ID
}

// Build walks the link graph and produces maximal chains.
//
// For each unvisited entity it follows single-parent/single-child edges
// backward to the chain's root, then forward to its end, marking every
// entity visited exactly once. The walk is deterministic given a fixed node
// and link ordering. Unresolvable links have already been dropped by
// [model.Document.ResolvedLinks].
//
// currentYear caps the lifespan of active entities when computing chain
// spans.
func Build(doc *model.Document, currentYear int) *Graph {
	links, _ := doc.ResolvedLinks()

	nodeByID := make(map[string]model.Node, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodeByID[n.ID] = n
	}

	// Entity-level adjacency. Degree counts include every link, so an entity
	// with two incoming merges is a boundary even if one source is missing
	// from its own chain.
	in := make(map[string][]model.Link)
	out := make(map[string][]model.Link)
	for _, l := range links {
		out[l.Source] = append(out[l.Source], l)
		in[l.Target] = append(in[l.Target], l)
	}

	fusableUp := func(id string) (string, bool) {
		// id joins its predecessor's chain iff it has exactly one incoming
		// link and that predecessor has exactly one outgoing link.
		if len(in[id]) != 1 {
			return "", false
		}
		pred := in[id][0].Source
		if len(out[pred]) != 1 {
			return "", false
		}
		return pred, true
	}
	fusableDown := func(id string) (string, bool) {
		if len(out[id]) != 1 {
			return "", false
		}
		succ := out[id][0].Target
		if len(in[succ]) != 1 {
			return "", false
		}
		return succ, true
	}

	g := &Graph{
		chains:   make(map[string]*Chain),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		chainOf:  make(map[string]string, len(doc.Nodes)),
	}

	visited := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if visited[n.ID] {
			continue
		}

		// Walk backward to the root of the linear run. The walk-local seen
		// set guards against succession cycles in malformed input.
		root := n.ID
		seen := map[string]bool{root: true}
		for {
			pred, ok := fusableUp(root)
			if !ok || seen[pred] || visited[pred] {
				break
			}
			root = pred
			seen[root] = true
		}

		// Walk forward from the root, collecting members.
		members := []string{root}
		visited[root] = true
		curr := root
		for {
			succ, ok := fusableDown(curr)
			if !ok || visited[succ] {
				break
			}
			members = append(members, succ)
			visited[succ] = true
			curr = succ
		}

		c := &Chain{ID: root, Members: members}
		c.Start = nodeByID[members[0]].Founded
		c.End = nodeByID[members[0]].EndYear(currentYear)
		for _, m := range members[1:] {
			node := nodeByID[m]
			if node.Founded < c.Start {
				c.Start = node.Founded
			}
			if end := node.EndYear(currentYear); end > c.End {
				c.End = end
			}
		}
		g.chains[c.ID] = c
		for _, m := range members {
			g.chainOf[m] = c.ID
		}
	}

	// Lift links to chain granularity. Links between members of the same
	// chain were consumed by the fusion and carry no layout cost.
	adjSeen := make(map[[2]string]bool)
	for _, l := range links {
		pc, cc := g.chainOf[l.Source], g.chainOf[l.Target]
		if pc == cc {
			continue
		}
		g.links = append(g.links, Link{
			Parent:     pc,
			Child:      cc,
			Year:       l.Year,
			Type:       l.Type,
			SourceNode: l.Source,
			TargetNode: l.Target,
		})
		if !adjSeen[[2]string{pc, cc}] {
			adjSeen[[2]string{pc, cc}] = true
			g.children[pc] = append(g.children[pc], cc)
			g.parents[cc] = append(g.parents[cc], pc)
		}
	}

	g.order = make([]string, 0, len(g.chains))
	for id := range g.chains {
		g.order = append(g.order, id)
	}
	slices.SortFunc(g.order, func(a, b string) int {
		if c := cmp.Compare(g.chains[a].Start, g.chains[b].Start); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return g
}

// Chain returns the chain with the given ID and true, or nil and false.
func (g *Graph) Chain(id string) (*Chain, bool) {
	c, ok := g.chains[id]
	return c, ok
}

// ChainIDs returns all chain IDs ordered by start year, then ID.
// The returned slice must not be modified.
func (g *Graph) ChainIDs() []string { return g.order }

// ChainCount returns the number of chains.
func (g *Graph) ChainCount() int { return len(g.chains) }

// ChainOf returns the ID of the chain containing the given entity.
func (g *Graph) ChainOf(nodeID string) (string, bool) {
	id, ok := g.chainOf[nodeID]
	return id, ok
}

// Parents returns the IDs of chains with a link into this chain.
// The returned slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.parents[id] }

// Children returns the IDs of chains this chain links into.
// The returned slice must not be modified.
func (g *Graph) Children(id string) []string { return g.children[id] }

// Degree returns the number of distinct linked chains (parents + children).
func (g *Graph) Degree(id string) int { return len(g.parents[id]) + len(g.children[id]) }

// Links returns all chain-level links in input order.
// The returned slice must not be modified.
func (g *Graph) Links() []Link { return g.links }
