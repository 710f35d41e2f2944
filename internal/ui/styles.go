package ui

import "github.com/charmbracelet/lipgloss"

// Category colors for visual differentiation
var categoryColors = map[string]lipgloss.Color{
	"science":       lipgloss.Color("#58a6ff"), // blue
	"history":       lipgloss.Color("#d29922"), // amber
	"animals":       lipgloss.Color("#7ee787"), // green
	"geography":     lipgloss.Color("#a5d6ff"), // light blue
	"food":          lipgloss.Color("#ffa657"), // orange
	"entertainment": lipgloss.Color("#f778ba"), // pink
	"sports":        lipgloss.Color("#ff7b72"), // coral
	"space":         lipgloss.Color("#d2a8ff"), // purple
	"weird":         lipgloss.Color("#f85149"), // red
	"random":        lipgloss.Color("#8b949e"), // gray
}

// Styles holds the theme-dependent lipgloss styles.
type Styles struct {
	Header       lipgloss.Style
	FactCard     lipgloss.Style
	FactText     lipgloss.Style
	SourceLine   lipgloss.Style
	Badge        lipgloss.Style
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style
	Muted        lipgloss.Style
	StatusBar    lipgloss.Style
	Error        lipgloss.Style
	Highlight    lipgloss.Style
}

// themePalette is the small set of colors that differ per theme.
type themePalette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	highlight lipgloss.Color
	cardBg    lipgloss.Color
	barBg     lipgloss.Color
}

var palettes = map[string]themePalette{
	"dark": {
		primary:   lipgloss.Color("62"),  // purple
		secondary: lipgloss.Color("241"), // gray
		highlight: lipgloss.Color("212"), // pink
		cardBg:    lipgloss.Color("236"),
		barBg:     lipgloss.Color("236"),
	},
	"light": {
		primary:   lipgloss.Color("27"),
		secondary: lipgloss.Color("245"),
		highlight: lipgloss.Color("162"),
		cardBg:    lipgloss.Color("254"),
		barBg:     lipgloss.Color("252"),
	},
	"cosmic": {
		primary:   lipgloss.Color("93"),
		secondary: lipgloss.Color("60"),
		highlight: lipgloss.Color("135"),
		cardBg:    lipgloss.Color("17"),
		barBg:     lipgloss.Color("17"),
	},
	"sunset": {
		primary:   lipgloss.Color("208"),
		secondary: lipgloss.Color("137"),
		highlight: lipgloss.Color("203"),
		cardBg:    lipgloss.Color("52"),
		barBg:     lipgloss.Color("52"),
	},
}

// StylesFor builds the style set for a theme name. Unknown themes fall
// back to dark.
func StylesFor(theme string) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(p.primary).
			Padding(0, 1),
		FactCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Margin(1, 0),
		FactText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),
		SourceLine: lipgloss.NewStyle().
			Foreground(p.secondary).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Foreground(p.primary).
			Background(p.cardBg).
			Padding(0, 1).
			MarginRight(1),
		SelectedItem: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(p.primary).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(p.secondary),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(p.barBg).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1),
		Highlight: lipgloss.NewStyle().
			Foreground(p.highlight).
			Bold(true),
	}
}

// categoryStyle renders a category badge in its fixed color.
func categoryStyle(category string) lipgloss.Style {
	color, ok := categoryColors[category]
	if !ok {
		color = categoryColors["random"]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
