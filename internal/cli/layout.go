package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/riverlane-tools/riverlane/pkg/config"
	"github.com/riverlane-tools/riverlane/pkg/layout"
	"github.com/riverlane-tools/riverlane/pkg/model"
	"github.com/riverlane-tools/riverlane/pkg/observability"
)

// layoutCommand creates the layout command for computing river diagrams.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		scoreboard bool
	)
	opts := layout.Options{}

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Compute a river-diagram layout from a lineage document",
		Long: `Compute a river-diagram layout from a lineage document.

The layout command takes a document.json file describing entities and their
lineage links, assigns every entity chain to a horizontal lane, and writes a
layout.json file with placed boxes and connector curves.

Large families consult the local precomputed-layout cache before optimizing
live; use --no-cache to always optimize from scratch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, configPath, noCache, scoreboard)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "engine configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the precomputed-layout cache")
	cmd.Flags().BoolVar(&scoreboard, "scoreboard", false, "print per-pass optimization diagnostics")

	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "diagram width in pixels")
	cmd.Flags().Float64Var(&opts.Stretch, "stretch", opts.Stretch, "horizontal zoom factor")
	cmd.Flags().IntVar(&opts.CurrentYear, "current-year", opts.CurrentYear, "cap year for active entities (default: this year)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for the optimizer")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layout.Options, output, configPath string, noCache, scoreboard bool) error {
	doc, err := model.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if scoreboard {
		cfg.Scoreboard = config.Scoreboard{Enabled: true, LogFunc: printPass}
	}

	opts.Config = cfg
	opts.Logger = c.Logger
	opts.Precomp = c.newPrecompAdapter(noCache, cfg)

	spinner := newSpinnerWithContext(ctx, "Reading document...")
	spinner.Start()
	observability.SetLayoutHooks(&spinnerPhases{spinner: spinner})
	defer observability.Reset()
	prog := newProgress(c.Logger)

	res, err := layout.Compute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Optimized %d families", res.Stats.Families))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeResultFile(res, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printLayoutSummary(res)
	printNewline()
	printNextStep("Inspect", "riverlane inspect "+input)

	return nil
}

// spinnerPhases drives the spinner's phase text from layout pipeline events,
// so long optimizations show which family is being worked on.
type spinnerPhases struct {
	observability.NoopLayoutHooks
	spinner *Spinner

	mu     sync.Mutex
	family int
}

func (h *spinnerPhases) OnComputeStart(_ context.Context, nodeCount, linkCount int) {
	h.spinner.SetPhase("Building chains: %d entities, %d links", nodeCount, linkCount)
}

func (h *spinnerPhases) OnFamilyStart(_ context.Context, _ string, chainCount int) {
	h.mu.Lock()
	h.family++
	n := h.family
	h.mu.Unlock()
	h.spinner.SetPhase("Optimizing family %d: %d chains", n, chainCount)
}

// printPass is the scoreboard sink for --scoreboard runs.
func printPass(passIndex int, m observability.PassMetrics) {
	printDetail("pass %d [%s] cost %.0f → %.0f, %d moves, %s",
		passIndex, strings.Join(m.Strategies, "+"), m.CostBefore, m.CostAfter,
		m.MovesAccepted, m.Duration.Round(time.Millisecond))
}

// writeResultFile writes a layout result as indented JSON.
func writeResultFile(res *layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
