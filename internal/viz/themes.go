package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the panel colors and how phases map to cell colors.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Titan  lipgloss.Color
	Cursor lipgloss.Color

	// Saturation and Value feed the HSV phase wheel. Tint, when set,
	// replaces the hue wheel with a single hue at varying brightness.
	Saturation float64
	Value      float64
	Tint       float64
	Mono       bool
}

// Available themes
var (
	ThemeSpectrum = Theme{
		Name:       "spectrum",
		Accent:     lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Border:     lipgloss.Color("#444466"),
		Titan:      lipgloss.Color("#ffffff"),
		Cursor:     lipgloss.Color("#ffff00"),
		Saturation: 0.85,
		Value:      1.0,
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Border:     lipgloss.Color("#00aa00"),
		Titan:      lipgloss.Color("#ccffcc"),
		Cursor:     lipgloss.Color("#ffff00"),
		Saturation: 1.0,
		Value:      1.0,
		Tint:       120,
		Mono:       true,
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Border:     lipgloss.Color("#0077be"),
		Titan:      lipgloss.Color("#ffd700"),
		Cursor:     lipgloss.Color("#ff4444"),
		Saturation: 0.7,
		Value:      0.9,
		Tint:       200,
		Mono:       true,
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Accent:     lipgloss.Color("#ff9ff3"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Border:     lipgloss.Color("#ff6b6b"),
		Titan:      lipgloss.Color("#feca57"),
		Cursor:     lipgloss.Color("#5fd068"),
		Saturation: 0.6,
		Value:      0.95,
	}

	// Default theme
	CurrentTheme = ThemeSpectrum

	// All available themes
	Themes = []Theme{
		ThemeSpectrum,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSpectrum
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
