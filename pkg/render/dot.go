// Package render exports chain graphs as Graphviz DOT and SVG for
// inspection. This is a diagnostic view of the layout engine's internal
// structure, not the river diagram itself.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/riverlane-tools/riverlane/pkg/chain"
)

// ToDOT converts a chain graph to Graphviz DOT format. Chains render as
// boxes labelled with their member entities and time span; chain-level links
// render as directed edges labelled with the event type.
func ToDOT(g *chain.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph chains {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range g.ChainIDs() {
		c, _ := g.Chain(id)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, chainLabel(c))
	}

	buf.WriteString("\n")
	seen := make(map[string]bool)
	for _, l := range g.Links() {
		key := l.Parent + ">" + l.Child + ">" + l.Type
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.Parent, l.Child, l.Type)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func chainLabel(c *chain.Chain) string {
	label := strings.Join(c.Members, " → ")
	return fmt.Sprintf("%s\n%d-%d", label, c.Start, c.End)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
