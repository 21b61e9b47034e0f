package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/riverlane-tools/riverlane/pkg/config"
	"github.com/riverlane-tools/riverlane/pkg/errors"
	"github.com/riverlane-tools/riverlane/pkg/precomp"
)

// Default option values applied by ValidateAndSetDefaults.
const (
	DefaultWidth        = 1200.0
	DefaultPadding      = 24.0
	DefaultLaneHeight   = 44.0
	DefaultMarginY      = 24.0
	DefaultMinNodeWidth = 36.0
)

// Options configures a layout computation. The zero value is usable:
// ValidateAndSetDefaults fills in production defaults.
type Options struct {
	// Width is the target horizontal pixel width of the diagram.
	Width float64 `json:"width"`

	// Padding is the horizontal inset before the first year.
	Padding float64 `json:"padding"`

	// Stretch multiplies the effective width (zoom). Values <= 0 become 1.
	Stretch float64 `json:"stretch"`

	// LaneHeight is the vertical pixel size of one lane.
	LaneHeight float64 `json:"lane_height"`

	// MarginY is the vertical inset above the first lane and below the last.
	MarginY float64 `json:"margin_y"`

	// MinNodeWidth floors the pixel width of active entities.
	MinNodeWidth float64 `json:"min_node_width"`

	// CurrentYear caps open-ended lifespans. Zero means "this year".
	CurrentYear int `json:"current_year"`

	// YearRange overrides the derived year range when both values are set.
	YearRange [2]int `json:"year_range"`

	// Config is the engine configuration. A zero Config means defaults.
	Config config.Config `json:"config"`

	// Seed drives the engine's pseudorandom source. Fixed by default so
	// identical inputs produce identical layouts.
	Seed int64 `json:"seed"`

	// Precomp, when non-nil, is consulted for precomputed lane assignments
	// before optimizing large families live.
	Precomp *precomp.Adapter `json:"-"`

	// Logger receives debug diagnostics. Nil means discard.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults normalizes the options in place and validates the
// engine configuration.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width < 0 || o.Padding < 0 || o.LaneHeight < 0 || o.MarginY < 0 || o.MinNodeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout dimensions must be non-negative")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Stretch <= 0 {
		o.Stretch = 1
	}
	if o.LaneHeight == 0 {
		o.LaneHeight = DefaultLaneHeight
	}
	if o.MarginY == 0 {
		o.MarginY = DefaultMarginY
	}
	if o.MinNodeWidth == 0 {
		o.MinNodeWidth = DefaultMinNodeWidth
	}
	if o.CurrentYear == 0 {
		o.CurrentYear = time.Now().Year()
	}
	if isZeroConfig(o.Config) {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// isZeroConfig reports whether the config was left entirely unset, as
// opposed to deliberately configured with zero weights.
func isZeroConfig(c config.Config) bool {
	return c.Schedule == nil &&
		c.Weights == (config.Weights{}) &&
		c.Annealing == (config.Annealing{}) &&
		!c.Scoreboard.Enabled &&
		c.PrecomputedMinChains == 0
}
