// Package pkg provides the core libraries for Riverlane river-diagram layout.
//
// # Overview
//
// Riverlane lays out organizational lineages as river diagrams: entities flow
// through horizontal lanes across a year axis, and merges, splits, transfers,
// and successions appear as connecting ribbons between lanes. The pkg
// directory is organized into the following areas:
//
//  1. Domain model ([model], [timescale], [chain])
//  2. Optimization ([lane], [config], [precomp])
//  3. Output ([layout], [geometry], [render])
//  4. Infrastructure ([cache], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through Riverlane:
//
//	Lineage document (JSON)
//	         ↓
//	    [chain] package (fuse successions, partition families)
//	         ↓
//	    [lane] package (assign chains to lanes, minimize cost)
//	         ↓
//	    [layout] package (boxes, connector curves, pixel geometry)
//	         ↓
//	    layout.json / SVG output
//
// # Quick Start
//
// Compute a layout from a document:
//
//	import (
//	    "context"
//	    "github.com/riverlane-tools/riverlane/pkg/layout"
//	    "github.com/riverlane-tools/riverlane/pkg/model"
//	)
//
//	doc, _ := model.ReadDocumentFile("lineage.json")
//	res, _ := layout.Compute(context.Background(), doc, layout.Options{})
//
// # Main Packages
//
// [model] - Document types: entities with founding and dissolution years,
// lineage links (merge, split, transfer, succession), JSON io helpers.
//
// [timescale] - Year-to-pixel mapping with padding and stretch, plus node
// span computation for active and dissolved entities.
//
// [chain] - Chain fusion (1-to-1 succession runs become one chain) and
// family partitioning with content hashing for cache keys.
//
// [lane] - The lane assignment engine: slot occupancy, cost model,
// greedy repositioning, pairwise swaps, rigid-group shifts, and simulated
// annealing.
//
// [config] - Engine tuning knobs loaded from TOML with validated defaults.
//
// [precomp] - Precomputed layout store (file cache, Redis, MongoDB) that
// seeds large families before live optimization.
//
// [layout] - End-to-end pipeline producing node boxes and connector paths.
//
// [geometry] - Cubic bezier connectors and SVG path serialization.
//
// [render] - Graphviz DOT/SVG export of the chain graph for inspection.
//
// [cache] - Cache interface with file, Redis, and null backends.
//
// [errors] - Error codes and wrapping helpers shared across packages.
//
// [observability] - Pluggable hooks for layout and optimization metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/lane/...       # Specific package
//
// [model]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/model
// [timescale]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/timescale
// [chain]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/chain
// [lane]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/lane
// [config]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/config
// [precomp]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/precomp
// [layout]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/layout
// [geometry]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/geometry
// [render]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/render
// [cache]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/cache
// [errors]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/errors
// [observability]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/riverlane-tools/riverlane/pkg/buildinfo
package pkg
