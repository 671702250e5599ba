package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 2

// RenderFooter renders the status and help lines, bottom aligned.
func RenderFooter(state FooterViewState) string {
	s := state.StatusLine + "\n" + state.HelpLine
	placed := lipgloss.Place(state.InnerW, FooterHeight, lipgloss.Left, lipgloss.Bottom, s,
		lipgloss.WithWhitespaceBackground(state.Bg))
	return Fill(placed, state.InnerW, FooterHeight, state.Bg)
}
