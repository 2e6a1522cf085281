package starfield

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarfield_StartAndTick(t *testing.T) {
	m := NewSeeded(3, 42)
	m.SetWidth(40)
	require.NotEmpty(t, m.Stars())

	cmd := m.Start()
	require.NotNil(t, cmd)
	assert.True(t, m.IsActive())
	assert.Nil(t, m.Start(), "already running")

	before := m.Stars()[0].X
	m, cmd = m.Update(TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	after := m.Stars()[0].X
	assert.NotEqual(t, before, after)
}

func TestStarfield_StarsStayInBounds(t *testing.T) {
	m := NewSeeded(2, 7)
	m.SetWidth(10)
	m.Start()

	for range 200 {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	for _, s := range m.Stars() {
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.Less(t, s.X, 10.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.Less(t, s.Y, 2.0)
	}
}

func TestStarfield_StoppedIgnoresTicks(t *testing.T) {
	m := NewSeeded(2, 1)
	m.SetWidth(20)

	m, cmd := m.Update(TickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.False(t, m.IsActive())
}

func TestStarfield_View(t *testing.T) {
	t.Run("renders height rows of width cells", func(t *testing.T) {
		m := NewSeeded(3, 3)
		m.SetWidth(30)

		lines := strings.Split(m.View(), "\n")
		require.Len(t, lines, 3)
		for _, l := range lines {
			assert.Equal(t, 30, lipgloss.Width(l))
		}
	})

	t.Run("disabled renders blank band", func(t *testing.T) {
		m := New(3, false)
		m.SetWidth(30)

		assert.Nil(t, m.Start())
		assert.Equal(t, "\n\n", m.View())
	})

	t.Run("zero height renders nothing", func(t *testing.T) {
		m := New(0, true)
		assert.Equal(t, "", m.View())
	})
}
