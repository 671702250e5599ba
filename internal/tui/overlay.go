package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/tui/view"
)

const (
	overlayMinWidth = 24
	overlayMaxWidth = 56
)

// OverlayModel renders an opaque box centered over the timeline.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
	fgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Show makes the overlay visible.
func (o *OverlayModel) Show() {
	o.active = true
}

// Hide removes the overlay.
func (o *OverlayModel) Hide() {
	o.active = false
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// SetBorder updates the overlay border color.
func (o *OverlayModel) SetBorder(color lipgloss.Color) {
	o.fgColor = color
}

// Render draws content in a box on top of base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 || content == "" {
		return base
	}

	box := o.box(content, width)
	x := (width - lipgloss.Width(box)) / 2
	y := (height - lipgloss.Height(box)) / 2
	return view.SpliceAt(base, box, x, y, width, height)
}

func (o OverlayModel) box(content string, width int) string {
	boxW := clampInt(lipgloss.Width(content)+4, overlayMinWidth, overlayMaxWidth)
	if boxW > width-2 {
		boxW = max(0, width-2)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(o.fgColor).
		BorderBackground(o.bgColor).
		Background(o.bgColor).
		Padding(0, 1).
		Width(boxW).
		Render(content)
}

// tooltipOverlay pins a single line at a screen position.
type tooltipOverlay struct {
	x, y int
}

// Render implements view.OverlayRenderer.
func (t tooltipOverlay) Render(base string, width, height int, content string) string {
	return view.SpliceAt(base, content, t.x, t.y, width, height)
}
