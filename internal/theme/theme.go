// Package theme holds the color palettes and lipgloss styles of the UI.
package theme

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/robertguss/scifi-stories-go/internal/domain"
)

// Theme defines the color palette and styles for the application
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	Selection   lipgloss.Color
	ActiveTab   lipgloss.Color
	InactiveTab lipgloss.Color
	StatusBar   lipgloss.Color
	HeaderBg    lipgloss.Color
	Star        lipgloss.Color
}

// Catppuccin Mocha theme (default)
var Catppuccin = Theme{
	Name: "Catppuccin Mocha",

	// Base colors
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Subtle:     lipgloss.Color("#6c7086"),
	Highlight:  lipgloss.Color("#f5e0dc"),

	// Status colors
	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),
	Info:    lipgloss.Color("#89b4fa"),

	// Accent colors
	Primary:   lipgloss.Color("#cba6f7"),
	Secondary: lipgloss.Color("#f5c2e7"),
	Accent:    lipgloss.Color("#94e2d5"),

	// UI element colors
	Border:      lipgloss.Color("#313244"),
	Selection:   lipgloss.Color("#45475a"),
	ActiveTab:   lipgloss.Color("#cba6f7"),
	InactiveTab: lipgloss.Color("#6c7086"),
	StatusBar:   lipgloss.Color("#181825"),
	HeaderBg:    lipgloss.Color("#181825"),
	Star:        lipgloss.Color("#f9e2af"),
}

// Dracula theme
var Dracula = Theme{
	Name: "Dracula",

	// Base colors
	Background: lipgloss.Color("#282a36"),
	Foreground: lipgloss.Color("#f8f8f2"),
	Subtle:     lipgloss.Color("#6272a4"),
	Highlight:  lipgloss.Color("#f1fa8c"),

	// Status colors
	Success: lipgloss.Color("#50fa7b"),
	Warning: lipgloss.Color("#ffb86c"),
	Error:   lipgloss.Color("#ff5555"),
	Info:    lipgloss.Color("#8be9fd"),

	// Accent colors
	Primary:   lipgloss.Color("#bd93f9"),
	Secondary: lipgloss.Color("#ff79c6"),
	Accent:    lipgloss.Color("#8be9fd"),

	// UI element colors
	Border:      lipgloss.Color("#44475a"),
	Selection:   lipgloss.Color("#44475a"),
	ActiveTab:   lipgloss.Color("#bd93f9"),
	InactiveTab: lipgloss.Color("#6272a4"),
	StatusBar:   lipgloss.Color("#21222c"),
	HeaderBg:    lipgloss.Color("#21222c"),
	Star:        lipgloss.Color("#f1fa8c"),
}

// Nord theme
var Nord = Theme{
	Name: "Nord",

	// Base colors
	Background: lipgloss.Color("#2e3440"),
	Foreground: lipgloss.Color("#eceff4"),
	Subtle:     lipgloss.Color("#4c566a"),
	Highlight:  lipgloss.Color("#ebcb8b"),

	// Status colors
	Success: lipgloss.Color("#a3be8c"),
	Warning: lipgloss.Color("#ebcb8b"),
	Error:   lipgloss.Color("#bf616a"),
	Info:    lipgloss.Color("#81a1c1"),

	// Accent colors
	Primary:   lipgloss.Color("#88c0d0"),
	Secondary: lipgloss.Color("#b48ead"),
	Accent:    lipgloss.Color("#8fbcbb"),

	// UI element colors
	Border:      lipgloss.Color("#3b4252"),
	Selection:   lipgloss.Color("#434c5e"),
	ActiveTab:   lipgloss.Color("#88c0d0"),
	InactiveTab: lipgloss.Color("#4c566a"),
	StatusBar:   lipgloss.Color("#242933"),
	HeaderBg:    lipgloss.Color("#242933"),
	Star:        lipgloss.Color("#ebcb8b"),
}

// Current is the active theme
var Current = Catppuccin

// AvailableThemes returns a list of built-in theme names
func AvailableThemes() []string {
	return []string{"catppuccin", "dracula", "nord"}
}

// ByName returns the built-in theme with the given name
func ByName(name string) (Theme, bool) {
	switch name {
	case "catppuccin":
		return Catppuccin, true
	case "dracula":
		return Dracula, true
	case "nord":
		return Nord, true
	default:
		return Catppuccin, false
	}
}

// SetTheme sets the current theme by name. Unknown names select Catppuccin.
func SetTheme(name string) {
	Current, _ = ByName(name)
}

// NextTheme returns the name of the built-in theme after name, wrapping around
func NextTheme(name string) string {
	names := AvailableThemes()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// ThemeYAML represents a theme configuration in YAML format. Omitted colors
// are taken from the base theme.
type ThemeYAML struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"`

	// Base colors
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Subtle     string `yaml:"subtle"`
	Highlight  string `yaml:"highlight"`

	// Status colors
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`

	// Accent colors
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`

	// UI element colors
	Border      string `yaml:"border"`
	Selection   string `yaml:"selection"`
	ActiveTab   string `yaml:"active_tab"`
	InactiveTab string `yaml:"inactive_tab"`
	StatusBar   string `yaml:"status_bar"`
	HeaderBg    string `yaml:"header_bg"`
	Star        string `yaml:"star"`
}

// LoadThemeFromYAML reads a custom theme from a YAML file
func LoadThemeFromYAML(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}
	return ParseThemeYAML(data)
}

// ParseThemeYAML decodes a custom theme
func ParseThemeYAML(data []byte) (Theme, error) {
	var ty ThemeYAML
	if err := yaml.Unmarshal(data, &ty); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file: %w", err)
	}

	t, _ := ByName(ty.Base)
	if ty.Name != "" {
		t.Name = ty.Name
	} else {
		t.Name = "Custom"
	}

	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Background, ty.Background)
	set(&t.Foreground, ty.Foreground)
	set(&t.Subtle, ty.Subtle)
	set(&t.Highlight, ty.Highlight)
	set(&t.Success, ty.Success)
	set(&t.Warning, ty.Warning)
	set(&t.Error, ty.Error)
	set(&t.Info, ty.Info)
	set(&t.Primary, ty.Primary)
	set(&t.Secondary, ty.Secondary)
	set(&t.Accent, ty.Accent)
	set(&t.Border, ty.Border)
	set(&t.Selection, ty.Selection)
	set(&t.ActiveTab, ty.ActiveTab)
	set(&t.InactiveTab, ty.InactiveTab)
	set(&t.StatusBar, ty.StatusBar)
	set(&t.HeaderBg, ty.HeaderBg)
	set(&t.Star, ty.Star)

	return t, nil
}

// Styles contains pre-built lipgloss styles using the current theme
type Styles struct {
	// Base styles
	App       lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Content   lipgloss.Style

	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Highlight lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Interactive elements
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Active     lipgloss.Style
	Inactive   lipgloss.Style

	// Navigation
	NavItem       lipgloss.Style
	NavItemActive lipgloss.Style
	Shortcut      lipgloss.Style

	// Borders
	BorderedBox lipgloss.Style

	// Story cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Tile         lipgloss.Style

	// Tabs and mode buttons
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Button    lipgloss.Style
	Disabled  lipgloss.Style

	// Story status badges
	BadgeNew        lipgloss.Style
	BadgeInProgress lipgloss.Style
	BadgeCompleted  lipgloss.Style

	Star lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() Styles {
	t := Current

	return Styles{
		// Base styles
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		Header: lipgloss.NewStyle().
			Background(t.HeaderBg).
			Foreground(t.Foreground).
			Padding(0, 2).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(t.StatusBar).
			Foreground(t.Subtle).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		// Text styles
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true),

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(t.Success),

		Warning: lipgloss.NewStyle().
			Foreground(t.Warning),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),

		Info: lipgloss.NewStyle().
			Foreground(t.Info),

		// Interactive elements
		Selected: lipgloss.NewStyle().
			Background(t.Selection).
			Foreground(t.Foreground).
			Bold(true),

		Unselected: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Inactive: lipgloss.NewStyle().
			Foreground(t.Subtle),

		// Navigation
		NavItem: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 2),

		NavItemActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Shortcut: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		// Borders
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		// Story cards
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Foreground(t.Info).
			Padding(0, 1),

		// Tabs and mode buttons
		Tab: lipgloss.NewStyle().
			Foreground(t.InactiveTab).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.ActiveTab).
			Padding(0, 2).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Selection).
			Padding(0, 2),

		Disabled: lipgloss.NewStyle().
			Foreground(t.Border).
			Padding(0, 2),

		// Story status badges
		BadgeNew: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Info).
			Padding(0, 1).
			Bold(true),

		BadgeInProgress: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Warning).
			Padding(0, 1).
			Bold(true),

		BadgeCompleted: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Success).
			Padding(0, 1).
			Bold(true),

		Star: lipgloss.NewStyle().
			Foreground(t.Star),
	}
}

// Badge returns the badge style for a story's effective status
func (s Styles) Badge(status domain.StoryStatus) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return s.BadgeCompleted
	case domain.StatusInProgress:
		return s.BadgeInProgress
	default:
		return s.BadgeNew
	}
}
