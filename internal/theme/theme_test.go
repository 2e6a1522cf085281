package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { Current = Catppuccin })

	tests := []struct {
		name     string
		expected string
	}{
		{"catppuccin", "Catppuccin Mocha"},
		{"dracula", "Dracula"},
		{"nord", "Nord"},
		{"solarized", "Catppuccin Mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			assert.Equal(t, tt.expected, Current.Name)
		})
	}
}

func TestByName(t *testing.T) {
	_, ok := ByName("nord")
	assert.True(t, ok)

	fallback, ok := ByName("")
	assert.False(t, ok)
	assert.Equal(t, Catppuccin.Name, fallback.Name)
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "dracula", NextTheme("catppuccin"))
	assert.Equal(t, "nord", NextTheme("dracula"))
	assert.Equal(t, "catppuccin", NextTheme("nord"))
	assert.Equal(t, "catppuccin", NextTheme("custom"))
}

func TestParseThemeYAML(t *testing.T) {
	t.Run("overrides only the given colors", func(t *testing.T) {
		th, err := ParseThemeYAML([]byte("name: Deep Space\nbase: nord\nprimary: \"#ff0000\"\nstar: \"#ffffff\"\n"))
		require.NoError(t, err)

		assert.Equal(t, "Deep Space", th.Name)
		assert.Equal(t, lipgloss.Color("#ff0000"), th.Primary)
		assert.Equal(t, lipgloss.Color("#ffffff"), th.Star)
		assert.Equal(t, Nord.Background, th.Background)
		assert.Equal(t, Nord.Success, th.Success)
	})

	t.Run("defaults to catppuccin base and custom name", func(t *testing.T) {
		th, err := ParseThemeYAML([]byte("error: \"#123456\"\n"))
		require.NoError(t, err)

		assert.Equal(t, "Custom", th.Name)
		assert.Equal(t, lipgloss.Color("#123456"), th.Error)
		assert.Equal(t, Catppuccin.Foreground, th.Foreground)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := ParseThemeYAML([]byte("name: [broken"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse theme file")
	})
}

func TestLoadThemeFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Mine\nbase: dracula\n"), 0644))

	th, err := LoadThemeFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "Mine", th.Name)
	assert.Equal(t, Dracula.Primary, th.Primary)

	_, err = LoadThemeFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
