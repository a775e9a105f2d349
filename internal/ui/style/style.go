// Package style provides shared UI styling primitives for the target
// listing.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris  = lipgloss.Color("#8B5CF6")
	Slate = lipgloss.Color("#667085")
)

// List builds the styles used by the target listing against the given
// renderer, so the color profile of the actual output writer applies.
type List struct {
	Name        lipgloss.Style
	Description lipgloss.Style
	Default     lipgloss.Style
}

// NewList creates the listing styles for a renderer.
func NewList(r *lipgloss.Renderer) List {
	return List{
		Name:        r.NewStyle().Bold(true).Foreground(Iris),
		Description: r.NewStyle().Foreground(Slate),
		Default:     r.NewStyle().Foreground(Slate).Italic(true),
	}
}
