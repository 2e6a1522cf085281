// Package starfield draws a slowly drifting band of stars above the story
// list.
package starfield

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/theme"
)

const (
	frameInterval = 120 * time.Millisecond
	density       = 0.06
)

// Star is one point of the field. Far stars move slower and render dimmer.
type Star struct {
	X, Y  float64
	Speed float64
	Char  string
	Far   bool
}

// TickMsg triggers animation frame update
type TickMsg time.Time

// Model represents the starfield band
type Model struct {
	width   int
	height  int
	stars   []Star
	active  bool
	rng     *rand.Rand
	frame   int
	enabled bool
}

var starChars = []string{".", "·", "*", "+", "✦"}

// New creates a starfield of the given height. A disabled starfield renders
// empty lines and never ticks.
func New(height int, enabled bool) Model {
	return Model{
		height:  height,
		enabled: enabled,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5c1f1)),
	}
}

// NewSeeded creates a starfield with a fixed random seed
func NewSeeded(height int, seed uint64) Model {
	m := New(height, true)
	m.rng = rand.New(rand.NewPCG(seed, 0x5c1f1))
	return m
}

// Start begins the animation
func (m *Model) Start() tea.Cmd {
	if !m.enabled || m.active {
		return nil
	}
	m.active = true
	if len(m.stars) == 0 {
		m.stars = m.generate()
	}
	return m.tick()
}

// Stop pauses the animation
func (m *Model) Stop() {
	m.active = false
}

// IsActive returns whether the animation is running
func (m Model) IsActive() bool {
	return m.active
}

// Height returns the number of rows the band occupies
func (m Model) Height() int {
	return m.height
}

// SetWidth regenerates the field for a new width
func (m *Model) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.stars = m.generate()
}

// Stars returns the current star positions
func (m Model) Stars() []Star {
	return m.stars
}

func (m Model) generate() []Star {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	count := max(1, int(float64(m.width*m.height)*density))
	stars := make([]Star, count)
	for i := range stars {
		far := m.rng.IntN(3) > 0
		speed := 0.15 + m.rng.Float64()*0.15
		if !far {
			speed *= 3
		}
		stars[i] = Star{
			X:     m.rng.Float64() * float64(m.width),
			Y:     float64(m.rng.IntN(m.height)),
			Speed: speed,
			Char:  starChars[m.rng.IntN(len(starChars))],
			Far:   far,
		}
	}
	return stars
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init initializes the starfield model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update advances the animation by one frame
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg.(type) {
	case TickMsg:
		if !m.active {
			return m, nil
		}

		m.frame++
		for i := range m.stars {
			s := &m.stars[i]
			s.X -= s.Speed
			if s.X < 0 {
				s.X += float64(m.width)
				s.Y = float64(m.rng.IntN(m.height))
			}
		}

		return m, m.tick()
	}
	return m, nil
}

// View renders the star band
func (m Model) View() string {
	if m.height <= 0 {
		return ""
	}
	if !m.enabled || m.width <= 0 {
		return strings.Repeat("\n", m.height-1)
	}

	t := theme.Current
	near := lipgloss.NewStyle().Foreground(t.Star)
	far := lipgloss.NewStyle().Foreground(t.Subtle)

	grid := make([][]string, m.height)
	for i := range grid {
		grid[i] = make([]string, m.width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for i, s := range m.stars {
		x, y := int(s.X), int(s.Y)
		if x < 0 || x >= m.width || y < 0 || y >= m.height {
			continue
		}
		style := near
		// far stars twinkle on alternating frames
		if s.Far {
			if (m.frame+i)%7 == 0 {
				continue
			}
			style = far
		}
		grid[y][x] = style.Render(s.Char)
	}

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
