package storycard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/imageurl"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "Nebula Drift", Title(domain.Story{Title: "Nebula Drift"}))
	assert.Equal(t, domain.DefaultCardTitle, Title(domain.Story{}))
	assert.Equal(t, domain.DefaultCardTitle, Title(domain.Story{Title: "   "}))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "COMPLETED", StatusLabel(domain.Story{Status: domain.StatusPublished}))
	assert.Equal(t, "IN PROGRESS", StatusLabel(domain.Story{Status: domain.StatusInProgress}))
	assert.Equal(t, "NEW", StatusLabel(domain.Story{Status: "Draft"}))
}

func TestRender(t *testing.T) {
	s := domain.Story{
		ID:          "a",
		Title:       "The Last Orbit",
		Description: "A station refuses to fall.",
		Status:      domain.StatusPublished,
		Image:       domain.ListImage("last orbit.png"),
		Adventure:   &domain.Adventure{Title: "Station Zero"},
	}

	out := Render(s, 60, false)
	assert.Contains(t, out, "The Last Orbit")
	assert.Contains(t, out, "Station Zero")
	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "last%20orbit.png")
	assert.Equal(t, Height, lipgloss.Height(out))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}

func TestRender_Defaults(t *testing.T) {
	out := Render(domain.Story{ID: "x"}, 60, true)
	assert.Contains(t, out, domain.DefaultCardTitle)
	assert.Contains(t, out, domain.DefaultDescription)
	assert.Contains(t, out, imageurl.CardPlaceholder[:30])
	assert.Contains(t, out, "NEW")
}
