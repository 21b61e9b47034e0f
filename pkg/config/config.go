// Package config defines the cost weights and optimization schedule for the
// lane assignment engine.
//
// A [Config] is an immutable value passed explicitly into every engine entry
// point. There is no ambient or global configuration state: callers construct
// a Config (usually starting from [Default]), validate it once, and thread it
// through the layout pipeline.
//
// Configuration errors are programmer errors and fail fast: [Config.Validate]
// rejects negative weights, malformed schedule entries, and degenerate
// annealing parameters before any computation starts.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/riverlane-tools/riverlane/pkg/errors"
	"github.com/riverlane-tools/riverlane/pkg/observability"
)

// Strategy names a local-search operator family used by a schedule entry.
type Strategy string

// Recognized strategies for schedule entries.
const (
	// StrategyParents repositions each chain greedily against its parents.
	StrategyParents Strategy = "parents"
	// StrategyChildren repositions each chain greedily against its children.
	StrategyChildren Strategy = "children"
	// StrategyHubs repositions only high-degree chains (3+ linked chains).
	StrategyHubs Strategy = "hubs"
	// StrategyHybrid runs the groupwise pass: rigid group moves, pairwise
	// swaps, and the simulated-annealing fallback.
	StrategyHybrid Strategy = "hybrid"
)

// validStrategies is the set of recognized strategy names.
var validStrategies = map[Strategy]bool{
	StrategyParents:  true,
	StrategyChildren: true,
	StrategyHubs:     true,
	StrategyHybrid:   true,
}

// Weights holds the named scalar penalties of the placement cost model.
// All weights must be non-negative; cost is always >= 0.
//
// The gap thresholds and the Y-shape radius are empirically tuned values
// carried over from production data. They are configuration defaults, not
// invariants - callers may override them.
type Weights struct {
	Attraction  float64 `toml:"attraction" json:"attraction"`     // Quadratic pull toward linked chains
	LaneSharing float64 `toml:"lane_sharing" json:"lane_sharing"` // Sharing a lane with a temporally close occupant
	TightGap    float64 `toml:"tight_gap" json:"tight_gap"`       // Additional penalty for very close non-overlapping gaps
	CutThrough  float64 `toml:"cut_through" json:"cut_through"`   // Connector crossing an occupied intermediate lane
	Blocker     float64 `toml:"blocker" json:"blocker"`           // Unrelated vertical segment crossing the chain's lane
	YShape      float64 `toml:"y_shape" json:"y_shape"`           // Merge-parents squeezed into near-adjacent lanes

	// ShareGapYears is the maximum temporal gap (in years) at which two
	// same-lane occupants are considered to be sharing the lane.
	ShareGapYears int `toml:"share_gap_years" json:"share_gap_years"`

	// TightGapYears is the gap band (in years) below which the tight-gap
	// penalty applies in addition to the lane-sharing penalty.
	TightGapYears int `toml:"tight_gap_years" json:"tight_gap_years"`

	// YShapeRadius is the lane distance within which two unrelated parents
	// of a shared merge-child attract the Y-shape penalty.
	YShapeRadius int `toml:"y_shape_radius" json:"y_shape_radius"`
}

// PassEntry is one entry of the optimization pass schedule. Strategies within
// an entry alternate round-robin across the iteration budget: an entry with
// strategies [A, B] and 2 iterations executes A, B, A, B.
//
// An entry is skipped entirely for families below MinFamilySize chains or
// MinLinks links, so trivially small families never burn optimization passes.
type PassEntry struct {
	Strategies    []Strategy `toml:"strategies" json:"strategies"`
	Iterations    int        `toml:"iterations" json:"iterations"`
	MinFamilySize int        `toml:"min_family_size" json:"min_family_size"`
	MinLinks      int        `toml:"min_links" json:"min_links"`
}

// Annealing bounds the simulated-annealing fallback used by hybrid passes.
type Annealing struct {
	MaxIterations int     `toml:"max_iterations" json:"max_iterations"`
	InitialTemp   float64 `toml:"initial_temp" json:"initial_temp"`
	CoolingRate   float64 `toml:"cooling_rate" json:"cooling_rate"` // Multiplicative decay per iteration, in (0, 1)

	// Radius widens the search region beyond the group's current lane span.
	Radius int `toml:"radius" json:"radius"`
}

// Scoreboard enables per-pass diagnostics. When enabled, the engine invokes
// LogFunc after every pass with the pass index and its metrics.
type Scoreboard struct {
	Enabled bool                      `toml:"enabled" json:"enabled"`
	LogFunc observability.PassLogFunc `toml:"-" json:"-"`
}

// Config is the complete engine configuration: cost weights, pass schedule,
// annealing bounds, and scoreboard diagnostics.
type Config struct {
	Weights    Weights     `toml:"weights" json:"weights"`
	Schedule   []PassEntry `toml:"schedule" json:"schedule"`
	Annealing  Annealing   `toml:"annealing" json:"annealing"`
	Scoreboard Scoreboard  `toml:"scoreboard" json:"scoreboard"`

	// PrecomputedMinChains is the family size at and above which the engine
	// consults the precomputed-layout cache before optimizing live.
	PrecomputedMinChains int `toml:"precomputed_min_chains" json:"precomputed_min_chains"`
}

// Default returns the production default configuration.
func Default() Config {
	return Config{
		Weights: Weights{
			Attraction:    500,
			LaneSharing:   500,
			TightGap:      2000,
			CutThrough:    1000,
			Blocker:       800,
			YShape:        600,
			ShareGapYears: 30,
			TightGapYears: 10,
			YShapeRadius:  2,
		},
		Schedule: []PassEntry{
			{Strategies: []Strategy{StrategyParents, StrategyChildren}, Iterations: 2, MinFamilySize: 2, MinLinks: 1},
			{Strategies: []Strategy{StrategyHubs}, Iterations: 1, MinFamilySize: 4, MinLinks: 3},
			{Strategies: []Strategy{StrategyHybrid}, Iterations: 2, MinFamilySize: 3, MinLinks: 2},
			{Strategies: []Strategy{StrategyParents, StrategyChildren}, Iterations: 1, MinFamilySize: 2, MinLinks: 1},
		},
		Annealing: Annealing{
			MaxIterations: 250,
			InitialTemp:   1000,
			CoolingRate:   0.95,
			Radius:        3,
		},
		PrecomputedMinChains: 20,
	}
}

// Validate checks the configuration and returns a structured error for the
// first violation found. Configuration errors are the only error class that
// fails fast rather than degrading: a malformed Config must never reach the
// optimizer.
func (c Config) Validate() error {
	if err := c.Weights.validate(); err != nil {
		return err
	}
	for i, e := range c.Schedule {
		if len(e.Strategies) == 0 {
			return errors.New(errors.ErrCodeInvalidSchedule, "schedule entry %d has no strategies", i)
		}
		for _, s := range e.Strategies {
			if !validStrategies[s] {
				return errors.New(errors.ErrCodeInvalidSchedule, "schedule entry %d: unknown strategy %q", i, s)
			}
		}
		if e.Iterations <= 0 {
			return errors.New(errors.ErrCodeInvalidSchedule, "schedule entry %d: iterations must be positive, got %d", i, e.Iterations)
		}
		if e.MinFamilySize < 0 || e.MinLinks < 0 {
			return errors.New(errors.ErrCodeInvalidSchedule, "schedule entry %d: negative skip threshold", i)
		}
	}
	if c.Annealing.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "annealing max_iterations must be non-negative, got %d", c.Annealing.MaxIterations)
	}
	if c.Annealing.InitialTemp <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "annealing initial_temp must be positive, got %f", c.Annealing.InitialTemp)
	}
	if c.Annealing.CoolingRate <= 0 || c.Annealing.CoolingRate >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "annealing cooling_rate must be in (0, 1), got %f", c.Annealing.CoolingRate)
	}
	if c.Annealing.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "annealing radius must be non-negative, got %d", c.Annealing.Radius)
	}
	if c.PrecomputedMinChains < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "precomputed_min_chains must be non-negative, got %d", c.PrecomputedMinChains)
	}
	return nil
}

func (w Weights) validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"attraction", w.Attraction},
		{"lane_sharing", w.LaneSharing},
		{"tight_gap", w.TightGap},
		{"cut_through", w.CutThrough},
		{"blocker", w.Blocker},
		{"y_shape", w.YShape},
	}
	for _, nw := range named {
		if nw.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "weight %s must be non-negative, got %f", nw.name, nw.value)
		}
	}
	if w.ShareGapYears < 0 || w.TightGapYears < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gap thresholds must be non-negative")
	}
	if w.YShapeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "y_shape_radius must be non-negative, got %d", w.YShapeRadius)
	}
	return nil
}

// LoadFile reads a TOML configuration file, overlaying it on the defaults.
// Fields absent from the file keep their default values. The result is
// validated before being returned.
func LoadFile(path string) (Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
