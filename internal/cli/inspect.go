package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/riverlane-tools/riverlane/pkg/chain"
	"github.com/riverlane-tools/riverlane/pkg/model"
	"github.com/riverlane-tools/riverlane/pkg/render"
)

// inspectCommand creates the inspect command for examining document structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		dotOut string
		svgOut string
		useTUI bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [document.json]",
		Short: "Show the chain and family structure of a lineage document",
		Long: `Show the chain and family structure of a lineage document.

Inspect fuses 1-to-1 succession runs into chains, partitions them into
families, and prints the resulting structure. The chain graph can be exported
as Graphviz DOT or SVG, or browsed interactively with --tui.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], dotOut, svgOut, useTUI)
		},
	}

	cmd.Flags().StringVar(&dotOut, "dot", "", "write the chain graph as Graphviz DOT to this file")
	cmd.Flags().StringVar(&svgOut, "svg", "", "render the chain graph as SVG to this file")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "browse families interactively")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, dotOut, svgOut string, useTUI bool) error {
	doc, err := model.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	currentYear := time.Now().Year()
	g := chain.Build(doc, currentYear)
	families := chain.Partition(g)
	_, dropped := doc.ResolvedLinks()

	if useTUI {
		return runFamilyBrowser(g, families)
	}

	printInfo("%s", input)
	printKeyValue("entities", fmt.Sprintf("%d", len(doc.Nodes)))
	printKeyValue("links", fmt.Sprintf("%d", len(doc.Links)))
	printKeyValue("chains", fmt.Sprintf("%d", g.ChainCount()))
	printKeyValue("families", fmt.Sprintf("%d", len(families)))
	if dropped > 0 {
		printWarning("%d links dropped (unresolvable endpoints)", dropped)
	}
	printNewline()
	printFamilyTable(familyRows(g, families))

	if dotOut != "" {
		if err := os.WriteFile(dotOut, []byte(render.ToDOT(g)), 0o644); err != nil {
			return fmt.Errorf("write DOT %s: %w", dotOut, err)
		}
		printFile(dotOut)
	}
	if svgOut != "" {
		svg, err := render.RenderSVG(render.ToDOT(g))
		if err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
		if err := os.WriteFile(svgOut, svg, 0o644); err != nil {
			return fmt.Errorf("write SVG %s: %w", svgOut, err)
		}
		printFile(svgOut)
	}

	return nil
}

// familyRows converts families into table rows with their year spans.
func familyRows(g *chain.Graph, families []*chain.Family) []familyRow {
	rows := make([]familyRow, 0, len(families))
	for _, fam := range families {
		var starts, ends []int
		for _, id := range fam.Chains {
			if c, ok := g.Chain(id); ok {
				starts = append(starts, c.Start)
				ends = append(ends, c.End)
			}
		}
		rows = append(rows, familyRow{
			Index:  fam.Index,
			Chains: fam.Size(),
			Links:  fam.LinkCount(),
			Span:   familySpan(starts, ends),
			Hash:   truncateHash(fam.Hash(g)),
		})
	}
	return rows
}

// runFamilyBrowser opens the interactive family list.
func runFamilyBrowser(g *chain.Graph, families []*chain.Family) error {
	m := NewFamilyListModel(g, families)
	_, err := tea.NewProgram(m).Run()
	return err
}
