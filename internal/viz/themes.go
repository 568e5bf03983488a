package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the viewer. Particles is the braille foreground; the rest
// style the side panel.
type Theme struct {
	Name      string
	Particles lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:      "mono",
		Particles: lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#444444"),
	}

	ThemeEmber = Theme{
		Name:      "ember",
		Particles: lipgloss.Color("#ff9f43"),
		Accent:    lipgloss.Color("#ff6b6b"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Border:    lipgloss.Color("#5a3a4a"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Particles: lipgloss.Color("#00ff00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Border:    lipgloss.Color("#003300"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Particles: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Border:    lipgloss.Color("#224466"),
	}

	Themes = []Theme{ThemeMono, ThemeEmber, ThemePhosphor, ThemeOcean}
)

// GetTheme falls back to mono for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMono
}

// NextTheme returns the theme after cur, wrapping around.
func NextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
