package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riverlane-tools/riverlane/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleSeeded  = lipgloss.NewStyle().Foreground(colorGreen)
	styleLive    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Layout Summary
// =============================================================================

// printLayoutSummary prints the one-line digest of a computed layout:
// counts, lane usage, and whether any family adopted a precomputed
// assignment instead of optimizing live.
func printLayoutSummary(res *layout.Result) {
	parts := []string{
		fmt.Sprintf("%d entities", len(res.Nodes)),
		fmt.Sprintf("%d connectors", len(res.Links)),
		fmt.Sprintf("%d lanes", res.LaneCount),
	}
	if res.Stats.Families != 1 {
		parts = append(parts, fmt.Sprintf("%d families", res.Stats.Families))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}

	line += StyleDim.Render(" · ")
	if res.Stats.SeededFamilies > 0 {
		line += styleSeeded.Render(fmt.Sprintf("%d/%d precomputed", res.Stats.SeededFamilies, res.Stats.Families))
	} else {
		line += styleLive.Render("optimized live")
	}
	fmt.Println(line)

	if res.Stats.DroppedLinks > 0 {
		printWarning("%d links dropped (unresolvable endpoints)", res.Stats.DroppedLinks)
	}
}

// =============================================================================
// Family Table
// =============================================================================

// familyRow is one line of the inspect command's family table.
type familyRow struct {
	Index  int
	Chains int
	Links  int
	Span   string // e.g. "1923-1968"
	Hash   string // truncated content hash
}

var (
	familyColIndex = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	familyColNum   = lipgloss.NewStyle().Foreground(colorWhite).Width(8).Align(lipgloss.Right)
	familyColSpan  = lipgloss.NewStyle().Foreground(colorWhite).Width(12).Align(lipgloss.Right)
	familyColHash  = lipgloss.NewStyle().Foreground(colorDim)
)

// printFamilyTable prints the family breakdown with aligned columns.
func printFamilyTable(rows []familyRow) {
	header := familyColIndex.Render("family") +
		familyColNum.Render("chains") +
		familyColNum.Render("links") +
		familyColSpan.Render("span") +
		"  " + familyColHash.Render("hash")
	fmt.Println("  " + StyleDim.Render(header))

	for _, r := range rows {
		line := familyColIndex.Render(fmt.Sprintf("%d", r.Index)) +
			familyColNum.Render(fmt.Sprintf("%d", r.Chains)) +
			familyColNum.Render(fmt.Sprintf("%d", r.Links)) +
			familyColSpan.Render(r.Span) +
			"  " + familyColHash.Render(r.Hash)
		fmt.Println("  " + line)
	}
}

// familySpan formats the inclusive year range covered by a set of chain
// spans, or "-" when empty.
func familySpan(starts, ends []int) string {
	if len(starts) == 0 {
		return "-"
	}
	lo, hi := starts[0], ends[0]
	for i := range starts {
		if starts[i] < lo {
			lo = starts[i]
		}
		if ends[i] > hi {
			hi = ends[i]
		}
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// truncateHash shortens a content hash for display.
func truncateHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12]
}

// joinMembers renders a chain's member sequence for detail views.
func joinMembers(members []string) string {
	return strings.Join(members, " "+iconArrow+" ")
}
