package windows

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// themePreferenceKey stores the chosen variant in app preferences.
const themePreferenceKey = "theme"

// ThemeMode selects a fixed variant or follows the system.
type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
)

// ParseThemeMode maps a config or preference value to a mode. Unknown
// values follow the system.
func ParseThemeMode(s string) ThemeMode {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

// Next cycles system -> light -> dark -> system.
func (m ThemeMode) Next() ThemeMode {
	switch m {
	case ThemeSystem:
		return ThemeLight
	case ThemeLight:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

// GridTheme is the grid browser theme. Mode pins the light or dark palette
// regardless of the system setting.
type GridTheme struct {
	Mode ThemeMode
}

var _ fyne.Theme = (*GridTheme)(nil)

func (m GridTheme) variant(v fyne.ThemeVariant) fyne.ThemeVariant {
	switch m.Mode {
	case ThemeLight:
		return theme.VariantLight
	case ThemeDark:
		return theme.VariantDark
	default:
		return v
	}
}

func (m GridTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	variant = m.variant(variant)
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
		case theme.ColorNamePrimary, theme.ColorNameButton:
			return color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		case theme.ColorNameSelection:
			// selected rows
			return color.NRGBA{R: 0xbb, G: 0xde, B: 0xfb, A: 0xff}
		}
	} else {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
		case theme.ColorNamePrimary, theme.ColorNameButton:
			return color.NRGBA{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0x2d, G: 0x2d, B: 0x2d, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m GridTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m GridTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m GridTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameSeparatorThickness:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}

// LoadThemeMode returns the persisted mode, or fallback when none was
// saved yet.
func LoadThemeMode(prefs fyne.Preferences, fallback ThemeMode) ThemeMode {
	return ParseThemeMode(prefs.StringWithFallback(themePreferenceKey, string(fallback)))
}

// ApplyThemeMode installs the theme for mode and persists the choice.
func ApplyThemeMode(a fyne.App, mode ThemeMode) {
	a.Preferences().SetString(themePreferenceKey, string(mode))
	a.Settings().SetTheme(&GridTheme{Mode: mode})
}
