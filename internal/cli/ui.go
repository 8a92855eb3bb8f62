package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/shadegraph/pkg/nodedef"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Pin Type Colors
// =============================================================================

// pinColors maps pin value types to canvas colors, so a glance at a pin
// tells its type. Unknown types fall back to gray.
var pinColors = map[string]lipgloss.Color{
	nodedef.TypeFloat:        lipgloss.Color("114"), // soft green
	nodedef.TypeInteger:      lipgloss.Color("150"),
	nodedef.TypeBoolean:      lipgloss.Color("181"),
	nodedef.TypeColor3:       lipgloss.Color("215"), // orange
	nodedef.TypeColor4:       lipgloss.Color("216"),
	nodedef.TypeVector2:      lipgloss.Color("111"), // blue
	nodedef.TypeVector3:      lipgloss.Color("69"),
	nodedef.TypeVector4:      lipgloss.Color("63"),
	nodedef.TypeString:       lipgloss.Color("245"),
	nodedef.TypeFilename:     lipgloss.Color("139"),
	nodedef.TypeSurface:      lipgloss.Color("213"), // magenta
	nodedef.TypeDisplacement: lipgloss.Color("176"),
	nodedef.TypeMaterial:     lipgloss.Color("203"), // red
}

// pinStyle returns the render style for a pin type. With dimOthers set
// (a link drag is pending), every type except keep is muted so only
// compatible endpoints stand out.
func pinStyle(typ string, dimOthers bool, keep string) lipgloss.Style {
	if dimOthers && typ != keep {
		return lipgloss.NewStyle().Foreground(colorDim)
	}
	color, ok := pinColors[typ]
	if !ok {
		color = colorGray
	}
	return lipgloss.NewStyle().Foreground(color)
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

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

	styleNotice   = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleReadOnly = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
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

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount int) {
	line := "  " + StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)) +
		StyleDim.Render(" · ") +
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount))
	fmt.Println(line)
}
