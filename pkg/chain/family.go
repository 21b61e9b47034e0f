package chain

import "slices"

// Family is a connected component of chains under the undirected closure of
// the parent/child adjacency. Families are optimized independently and
// embedded into the shared lane space at disjoint lane ranges, so no
// optimization decision in one family can affect another.
type Family struct {
	Index  int      // Position in partition order
	Chains []string // Member chain IDs in graph order
	Links  []Link   // Chain-level links with both endpoints in the family
}

// Partition splits the graph into families via breadth-first traversal.
// Traversal seeds follow the graph's chain order, so the partition is
// deterministic for a fixed input document.
func Partition(g *Graph) []*Family {
	assigned := make(map[string]int, g.ChainCount())
	pos := make(map[string]int, g.ChainCount())
	for i, id := range g.ChainIDs() {
		pos[id] = i
	}
	var families []*Family

	for _, seed := range g.ChainIDs() {
		if _, ok := assigned[seed]; ok {
			continue
		}

		fam := &Family{Index: len(families)}
		queue := []string{seed}
		assigned[seed] = fam.Index
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			fam.Chains = append(fam.Chains, curr)

			for _, next := range g.Parents(curr) {
				if _, ok := assigned[next]; !ok {
					assigned[next] = fam.Index
					queue = append(queue, next)
				}
			}
			for _, next := range g.Children(curr) {
				if _, ok := assigned[next]; !ok {
					assigned[next] = fam.Index
					queue = append(queue, next)
				}
			}
		}

		// Keep member order aligned with the graph's global chain order so
		// the engine's initial placement is deterministic.
		slices.SortFunc(fam.Chains, func(a, b string) int {
			return pos[a] - pos[b]
		})
		families = append(families, fam)
	}

	for _, fam := range families {
		for _, l := range g.Links() {
			if assigned[l.Parent] == fam.Index && assigned[l.Child] == fam.Index {
				fam.Links = append(fam.Links, l)
			}
		}
	}

	return families
}

// Size returns the number of member chains.
func (f *Family) Size() int { return len(f.Chains) }

// LinkCount returns the number of member links.
func (f *Family) LinkCount() int { return len(f.Links) }
