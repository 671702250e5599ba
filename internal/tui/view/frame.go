package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OverlayRenderer draws content on top of a full-screen frame.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// Layer is one overlay stacked on a frame.
type Layer struct {
	Renderer OverlayRenderer
	Content  string
}

// Frame is a complete screen: the timeline body plus overlays drawn in
// order, last on top.
type Frame struct {
	Width       int
	Height      int
	Body        string
	Layers      []Layer
	Placeholder string
}

// Compose renders the frame. Layers without a renderer or content are
// skipped. A frame with no size yet shows the placeholder.
func Compose(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		if f.Placeholder != "" {
			return f.Placeholder
		}
		return "Loading..."
	}

	out := f.Body
	for _, l := range f.Layers {
		if l.Renderer == nil || l.Content == "" {
			continue
		}
		out = l.Renderer.Render(out, f.Width, f.Height, l.Content)
	}
	return out
}

// Fill pads every line of content to width cells and adds blank lines up
// to height, painting the padding with bg. Extra lines are dropped.
func Fill(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}

	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + pad.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}
