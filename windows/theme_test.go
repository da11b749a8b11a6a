package windows

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestParseThemeMode(t *testing.T) {
	tests := []struct {
		in   string
		want ThemeMode
	}{
		{"light", ThemeLight},
		{" Dark ", ThemeDark},
		{"system", ThemeSystem},
		{"", ThemeSystem},
		{"solarized", ThemeSystem},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThemeMode(tt.in))
		})
	}
}

func TestThemeMode_Next(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeSystem.Next())
	assert.Equal(t, ThemeDark, ThemeLight.Next())
	assert.Equal(t, ThemeSystem, ThemeDark.Next())
}

func TestGridTheme_PinsVariant(t *testing.T) {
	dark := GridTheme{Mode: ThemeDark}
	assert.Equal(t,
		dark.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	system := GridTheme{Mode: ThemeSystem}
	assert.NotEqual(t,
		system.Color(theme.ColorNameBackground, theme.VariantDark),
		system.Color(theme.ColorNameBackground, theme.VariantLight))
}

func TestThemeMode_Persisted(t *testing.T) {
	a := test.NewTempApp(t)

	assert.Equal(t, ThemeDark, LoadThemeMode(a.Preferences(), ThemeDark))

	ApplyThemeMode(a, ThemeLight)
	assert.Equal(t, ThemeLight, LoadThemeMode(a.Preferences(), ThemeDark))
	assert.Equal(t, &GridTheme{Mode: ThemeLight}, a.Settings().Theme())
}
