// Package layout orchestrates a full layout computation: time scale
// derivation, chain fusion, family partitioning, per-family lane
// optimization, and connector geometry.
//
// Compute is the single entry point used by the CLI and the HTTP server.
// Families are optimized independently and embedded into the shared lane
// space at disjoint lane ranges, in partition order.
package layout

import (
	"context"
	"time"

	"github.com/riverlane-tools/riverlane/pkg/chain"
	"github.com/riverlane-tools/riverlane/pkg/geometry"
	"github.com/riverlane-tools/riverlane/pkg/lane"
	"github.com/riverlane-tools/riverlane/pkg/model"
	"github.com/riverlane-tools/riverlane/pkg/observability"
	"github.com/riverlane-tools/riverlane/pkg/timescale"
)

// Compute lays out the document. An empty document yields an empty result,
// not an error; the only error class is invalid options.
func Compute(ctx context.Context, doc *model.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &model.Document{}
	}

	start := time.Now()
	observability.Layout().OnComputeStart(ctx, len(doc.Nodes), len(doc.Links))

	scale := timescale.Build(doc.Nodes, opts.CurrentYear, timescale.Options{
		Width:        opts.Width,
		Padding:      opts.Padding,
		Stretch:      opts.Stretch,
		MinNodeWidth: opts.MinNodeWidth,
		CurrentYear:  opts.CurrentYear,
		YearRange:    opts.YearRange,
	})

	g := chain.Build(doc, opts.CurrentYear)
	families := chain.Partition(g)
	_, dropped := doc.ResolvedLinks()

	res := &Result{
		Years: YearRange{Min: scale.YearMin, Max: scale.YearMax},
		Scale: ScaleInfo{
			YearMin: scale.YearMin,
			YearMax: scale.YearMax,
			Padding: opts.Padding,
			Width:   opts.Width,
			Stretch: opts.Stretch,
		},
		Stats: Stats{
			Families:     len(families),
			Chains:       g.ChainCount(),
			DroppedLinks: dropped,
		},
	}

	laneOffset := 0
	for _, fam := range families {
		famStart := time.Now()
		hash := fam.Hash(g)
		observability.Layout().OnFamilyStart(ctx, hash, fam.Size())

		engine := lane.New(g, fam, opts.Config, lane.WithSeed(opts.Seed))
		seeded := false
		if lanes, ok := opts.Precomp.Seed(ctx, g, fam); ok {
			if err := engine.Seed(lanes); err == nil {
				seeded = true
				res.Stats.SeededFamilies++
			} else {
				opts.Logger.Warn("precomputed layout unusable, optimizing live",
					"family", hash, "err", err)
			}
		}
		if !seeded {
			engine.Run(ctx)
		}
		res.Stats.Cost += engine.FamilyCost()

		famMax := 0
		for id, l := range engine.Lanes() {
			c, _ := g.Chain(id)
			c.Lane = laneOffset + l
			if l > famMax {
				famMax = l
			}
		}
		laneOffset += famMax + 1

		observability.Layout().OnFamilyComplete(ctx, hash, time.Since(famStart), seeded)
	}
	res.LaneCount = laneOffset

	res.Nodes = buildNodes(doc, g, scale, opts)
	res.Links = buildLinks(g, scale, opts)

	res.Width = scale.X(scale.YearMax) + opts.Padding
	res.Height = 2*opts.MarginY + float64(res.LaneCount)*opts.LaneHeight
	res.Stats.Duration = time.Since(start)

	opts.Logger.Debug("layout computed",
		"nodes", len(res.Nodes),
		"links", len(res.Links),
		"families", res.Stats.Families,
		"chains", res.Stats.Chains,
		"lanes", res.LaneCount,
		"seeded", res.Stats.SeededFamilies,
		"cost", res.Stats.Cost,
		"duration", res.Stats.Duration,
	)
	observability.Layout().OnComputeComplete(ctx, res.LaneCount, res.Stats.Duration, nil)
	return res, nil
}

// buildNodes places every entity in its chain's lane.
func buildNodes(doc *model.Document, g *chain.Graph, scale timescale.Scale, opts Options) []NodeBox {
	boxes := make([]NodeBox, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		chainID, ok := g.ChainOf(n.ID)
		if !ok {
			continue
		}
		c, _ := g.Chain(chainID)
		x, w := scale.NodeSpan(n)
		boxes = append(boxes, NodeBox{
			ID:      n.ID,
			Label:   n.DisplayLabel(),
			ChainID: chainID,
			Lane:    c.Lane,
			X:       x,
			Y:       opts.MarginY + float64(c.Lane)*opts.LaneHeight,
			Width:   w,
			Height:  opts.LaneHeight,
			Active:  n.Active(),
			Eras:    n.Eras,
		})
	}
	return boxes
}

// buildLinks draws one connector per chain-level link. The connector departs
// the parent's lane center at the event year and arrives at the child's lane
// center one year later, so every link occupies its event year's horizontal
// extent. Links fused inside a chain render as the chain's continuous ribbon
// and get no connector.
func buildLinks(g *chain.Graph, scale timescale.Scale, opts Options) []LinkPath {
	laneCenter := func(laneIdx int) float64 {
		return opts.MarginY + (float64(laneIdx)+0.5)*opts.LaneHeight
	}

	links := g.Links()
	out := make([]LinkPath, 0, len(links))
	for _, l := range links {
		parent, _ := g.Chain(l.Parent)
		child, _ := g.Chain(l.Child)
		path := geometry.Connector(
			geometry.Point{X: scale.X(l.Year), Y: laneCenter(parent.Lane)},
			geometry.Point{X: scale.X(l.Year + 1), Y: laneCenter(child.Lane)},
		)
		out = append(out, LinkPath{
			SourceID: l.SourceNode,
			TargetID: l.TargetNode,
			Year:     l.Year,
			Type:     l.Type,
			Path:     path,
			SVGPath:  path.SVG(),
		})
	}
	return out
}
