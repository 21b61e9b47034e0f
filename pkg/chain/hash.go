package chain

import (
	"slices"
	"strings"

	"github.com/riverlane-tools/riverlane/pkg/cache"
)

// Hash returns the family's content hash: a stable SHA-256 digest of its
// chain membership (chain IDs with their member entity IDs) and its links.
//
// The hash identifies the family across documents and processes: the offline
// optimization service keys its published lane assignments by the same
// digest, and any membership difference - an added entity, a removed link -
// changes the hash and invalidates the cached layout.
func (f *Family) Hash(g *Graph) string {
	var sb strings.Builder

	ids := slices.Clone(f.Chains)
	slices.Sort(ids)
	for _, id := range ids {
		c, ok := g.Chain(id)
		if !ok {
			continue
		}
		sb.WriteString(id)
		sb.WriteByte('=')
		sb.WriteString(strings.Join(c.Members, ","))
		sb.WriteByte(';')
	}

	links := make([]string, 0, len(f.Links))
	for _, l := range f.Links {
		links = append(links, l.Parent+">"+l.Child)
	}
	slices.Sort(links)
	sb.WriteString(strings.Join(links, ";"))

	return cache.Hash([]byte(sb.String()))
}
