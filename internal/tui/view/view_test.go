package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestFitCells(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
		{"日本語", 4, "日… "},
	}

	for _, tt := range tests {
		got := FitCells(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("FitCells(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && ansi.StringWidth(got) != tt.width {
			t.Errorf("FitCells(%q, %d) width = %d", tt.in, tt.width, ansi.StringWidth(got))
		}
	}
}

func TestRenderRow(t *testing.T) {
	plain := lipgloss.NewStyle()
	spans := []Span{
		{Start: 2, End: 8, Text: "Launch", Style: plain},
		{Start: 2, End: 3, Text: "▌", Style: plain},
		{Start: 7, End: 8, Text: "▐", Style: plain},
	}

	got := ansi.Strip(RenderRow(12, plain, spans))
	want := "  ▌aunc▐    "
	if got != want {
		t.Errorf("RenderRow = %q, want %q", got, want)
	}
}

func TestRenderRow_ClipsOffscreen(t *testing.T) {
	plain := lipgloss.NewStyle()

	got := ansi.Strip(RenderRow(6, plain, []Span{{Start: -3, End: 4, Text: "abcdefg", Style: plain}}))
	if got != "defg  " {
		t.Errorf("left clip = %q, want %q", got, "defg  ")
	}

	got = ansi.Strip(RenderRow(6, plain, []Span{{Start: 4, End: 20, Text: "xyz", Style: plain}}))
	if got != "    xy" {
		t.Errorf("right clip = %q, want %q", got, "    xy")
	}

	if RenderRow(0, plain, nil) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestSpliceAt(t *testing.T) {
	base := "aaaaaaaa\nbbbbbbbb\ncccccccc"

	got := strings.Split(ansi.Strip(SpliceAt(base, "XY", 3, 1, 8, 3)), "\n")
	if got[1] != "bbbXYbbb" {
		t.Errorf("row 1 = %q, want bbbXYbbb", got[1])
	}
	if got[0] != "aaaaaaaa" || got[2] != "cccccccc" {
		t.Errorf("other rows changed: %q", got)
	}

	// Pushed back inside the right edge.
	got = strings.Split(ansi.Strip(SpliceAt(base, "XYZ", 7, 0, 8, 3)), "\n")
	if got[0] != "aaaaaXYZ" {
		t.Errorf("row 0 = %q, want aaaaaXYZ", got[0])
	}

	if SpliceAt(base, "", 0, 0, 8, 3) != base {
		t.Error("empty overlay should return base")
	}
}

func TestRenderHeader(t *testing.T) {
	plain := lipgloss.NewStyle()

	got := ansi.Strip(RenderHeader(20, "almanac", "2024", plain))
	if got != "almanac"+strings.Repeat(" ", 9)+"2024" {
		t.Errorf("RenderHeader = %q", got)
	}

	got = ansi.Strip(RenderHeader(8, "almanac 2024", "months", plain))
	if got != "almanac…" {
		t.Errorf("narrow RenderHeader = %q", got)
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter(FooterViewState{InnerW: 20, StatusLine: "saved", HelpLine: "q quit"})
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != FooterHeight {
		t.Fatalf("footer lines = %d, want %d", len(lines), FooterHeight)
	}
	if !strings.HasPrefix(lines[0], "saved") || !strings.HasPrefix(lines[1], "q quit") {
		t.Errorf("footer = %q", lines)
	}
}

type stubOverlay struct{}

func (stubOverlay) Render(base string, width, height int, content string) string {
	return base + "|" + content
}

func TestCompose(t *testing.T) {
	if got := Compose(Frame{}); got != "Loading..." {
		t.Errorf("empty Compose = %q", got)
	}
	if got := Compose(Frame{Placeholder: "wait"}); got != "wait" {
		t.Errorf("placeholder Compose = %q", got)
	}

	tests := []struct {
		name   string
		layers []Layer
		want   string
	}{
		{"no layers", nil, "base"},
		{"empty content skipped", []Layer{{Renderer: stubOverlay{}}}, "base"},
		{"nil renderer skipped", []Layer{{Content: "tip"}}, "base"},
		{"stacked in order", []Layer{
			{Renderer: stubOverlay{}, Content: "box"},
			{Renderer: stubOverlay{}, Content: "tip"},
		}, "base|box|tip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(Frame{Width: 4, Height: 1, Body: "base", Layers: tt.layers})
			if got != tt.want {
				t.Errorf("Compose = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFill(t *testing.T) {
	got := ansi.Strip(Fill("ab\ncdef\nx\ny", 3, 2, lipgloss.Color("")))
	if got != "ab \ncdef" {
		t.Errorf("Fill = %q, want %q", got, "ab \ncdef")
	}
	if got := Fill("ab", 0, 2, lipgloss.Color("")); got != "ab" {
		t.Errorf("zero width Fill = %q", got)
	}
}
