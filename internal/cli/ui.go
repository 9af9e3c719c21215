package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/contactsheet/pkg/pipeline"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, lighting fallbacks
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands, paths
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

	// StyleLink for folder paths the user may want to open.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

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

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints an indented, dimmed detail line.
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
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(24)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Run Summaries
// =============================================================================

// formatStats renders run statistics as a single dimmed line, e.g.
// "12 shots · 4x3 grid · 3440x1110 px · 1.2s".
func formatStats(s pipeline.Stats) string {
	parts := []string{
		fmt.Sprintf("%d shots", s.ShotCount),
		fmt.Sprintf("%dx%d grid", s.Columns, s.Rows),
		fmt.Sprintf("%dx%d px", s.Width, s.Height),
	}
	if total := s.ScanTime + s.LoadTime + s.RenderTime; total > 0 {
		parts = append(parts, total.Round(time.Millisecond).String())
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · "))
}

// shotRows builds one table row per shot: index, label, department,
// version and file name.
func shotRows(shots []renders.ShotImage) [][]string {
	rows := make([][]string, 0, len(shots))
	for i, s := range shots {
		name := filepath.Base(s.Path)
		version := "—"
		if f, ok := renders.ParseFilename(name); ok {
			version = fmt.Sprintf("v%03d", f.Version)
		}
		dept := string(s.Dept)
		if dept == "" {
			dept = "—"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), sheet.Label(s.Path, s.Dept), dept, version, name})
	}
	return rows
}

// writeShotTable renders shots as a bordered table. Lighting fallbacks are
// highlighted so they stand out in review.
func writeShotTable(w io.Writer, shots []renders.ShotImage) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Dept", "Version", "File").
		Rows(shotRows(shots)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(shots) && shots[row].Dept == renders.DeptLighting {
				return base.Foreground(colorYellow)
			}
			if col == 0 || col == 4 {
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})
	fmt.Fprintln(w, t.Render())
}
