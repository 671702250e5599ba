package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Item bars: cyan, alternating with blue on odd rows
	colorBar    = color.New(color.FgCyan)
	colorBarAlt = color.New(color.FgBlue)

	// Today marker and clipped edges
	colorAccent = color.New(color.FgYellow, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatBar formats a timeline bar for the given row shade.
func formatBar(s string, shade int) string {
	if shade&1 == 1 {
		return colorBarAlt.Sprint(s)
	}
	return colorBar.Sprint(s)
}

// formatAccent formats text that should stand out.
func formatAccent(s string) string {
	return colorAccent.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
