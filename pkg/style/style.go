// Package style defines the visual styling for terminal output.
//
// All styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes, so every command renders consistently.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#4ade80"}
	warningColor = lipgloss.AdaptiveColor{Light: "#b08800", Dark: "#facc15"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#cb2431", Dark: "#f87171"}
	subtleColor  = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#9ca3af"}
	accentColor  = lipgloss.AdaptiveColor{Light: "#0366d6", Dark: "#60a5fa"}
)

var (
	// Success renders passing checks and completed operations
	Success = lipgloss.NewStyle().Foreground(successColor)

	// Warning renders recoverable problems
	Warning = lipgloss.NewStyle().Foreground(warningColor)

	// Error renders failures
	Error = lipgloss.NewStyle().Foreground(errorColor)

	// Title renders section headings
	Title = lipgloss.NewStyle().Bold(true).Underline(true)

	// Bold renders emphasized inline text
	Bold = lipgloss.NewStyle().Bold(true)

	// Subtle renders secondary detail like fix suggestions
	Subtle = lipgloss.NewStyle().Foreground(subtleColor)

	// Path renders filesystem paths
	Path = lipgloss.NewStyle().Foreground(accentColor)
)

// Status glyphs used in check listings
const (
	GlyphPass = "✓"
	GlyphWarn = "⚠"
	GlyphFail = "✗"
)
