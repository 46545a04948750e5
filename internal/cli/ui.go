package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/crates-lsp/pkg/hints"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - up to date
	colorYellow = lipgloss.Color("220") // Amber - newer version available
	colorRed    = lipgloss.Color("167") // Soft red - lookup failed
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for manifest headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for dependency declarations.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for up-to-date dependencies.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for dependencies with a newer release.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// hintStatus picks the icon and style for a hint label.
func hintStatus(label string) (string, lipgloss.Style) {
	switch {
	case strings.HasPrefix(label, "latest: "):
		return iconSuccess, StyleSuccess
	case strings.HasPrefix(label, "available: "):
		return iconWarning, StyleWarning
	default:
		return iconError, styleError
	}
}

// =============================================================================
// Check Output
// =============================================================================

// printManifest prints each hint next to the source line it annotates.
func printManifest(w io.Writer, path, text string, hs []hints.Hint) {
	fmt.Fprintln(w, StyleDim.Render(iconInfo)+" "+StyleTitle.Render(path)+" "+StyleDim.Render(plural(len(hs), "dependency", "dependencies")))
	if len(hs) == 0 {
		return
	}

	lines := strings.Split(text, "\n")
	sources := make([]string, len(hs))
	width := 0
	for i, h := range hs {
		if int(h.Line) < len(lines) {
			sources[i] = strings.TrimSpace(strings.TrimSuffix(lines[h.Line], "\r"))
		}
		width = max(width, lipgloss.Width(sources[i]))
	}

	source := StyleValue.Width(width)
	for i, h := range hs {
		icon, style := hintStatus(h.Label)
		fmt.Fprintln(w, "  "+style.Render(icon)+" "+source.Render(sources[i])+"  "+style.Render(h.Label))
	}
}

// printSummary prints totals across all checked manifests on one line.
func printSummary(w io.Writer, s checkStats) {
	parts := []string{
		plural(s.manifests, "manifest", "manifests"),
		StyleSuccess.Render(fmt.Sprintf("%d latest", s.latest)),
		StyleWarning.Render(fmt.Sprintf("%d outdated", s.available)),
	}
	if s.failed > 0 {
		parts = append(parts, styleError.Render(fmt.Sprintf("%d failed", s.failed)))
	}
	fmt.Fprintln(w, strings.Join(parts, StyleDim.Render(" · ")))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
