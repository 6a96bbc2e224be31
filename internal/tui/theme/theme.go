// Package theme defines color themes for the mywallet dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Active tab, selected row
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused borders
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // Primary accent (active states, the user's bubble)
	AccentBright lipgloss.Color
	Green        lipgloss.Color // Progress, positive amounts
	Red          lipgloss.Color // Errors, negative balance
	Yellow       lipgloss.Color
}

// MyWallet is the default theme, blue on slate.
var MyWallet = Theme{
	Name:         "my-wallet",
	Background:   lipgloss.Color("#0F172A"),
	Surface:      lipgloss.Color("#1E293B"),
	SurfaceHover: lipgloss.Color("#1D4ED8"),
	Border:       lipgloss.Color("#334155"),
	BorderAccent: lipgloss.Color("#2563EB"),
	TextDim:      lipgloss.Color("#6B7280"),
	TextMuted:    lipgloss.Color("#9CA3AF"),
	TextPrimary:  lipgloss.Color("#F3F4F6"),
	Accent:       lipgloss.Color("#2563EB"),
	AccentBright: lipgloss.Color("#60A5FA"),
	Green:        lipgloss.Color("#22C55E"),
	Red:          lipgloss.Color("#EF4444"),
	Yellow:       lipgloss.Color("#EAB308"),
}

// Light is the wallet palette on a light background.
var Light = Theme{
	Name:         "light",
	Background:   lipgloss.Color("#F3F4F6"),
	Surface:      lipgloss.Color("#FFFFFF"),
	SurfaceHover: lipgloss.Color("#E5E7EB"),
	Border:       lipgloss.Color("#D1D5DB"),
	BorderAccent: lipgloss.Color("#2563EB"),
	TextDim:      lipgloss.Color("#9CA3AF"),
	TextMuted:    lipgloss.Color("#6B7280"),
	TextPrimary:  lipgloss.Color("#1F2937"),
	Accent:       lipgloss.Color("#2563EB"),
	AccentBright: lipgloss.Color("#1D4ED8"),
	Green:        lipgloss.Color("#16A34A"),
	Red:          lipgloss.Color("#DC2626"),
	Yellow:       lipgloss.Color("#CA8A04"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("4"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("12"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("4"),
	AccentBright: lipgloss.Color("12"),
	Green:        lipgloss.Color("2"),
	Red:          lipgloss.Color("1"),
	Yellow:       lipgloss.Color("3"),
}

// Active is the currently selected theme.
var Active = MyWallet

// All available themes.
var All = []Theme{MyWallet, Light, Terminal}

// ByName returns a theme by its name, defaulting to MyWallet.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return MyWallet
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
