// Package storycard renders a story as a bordered card for the list grid.
package storycard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/imageurl"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/util"
)

// Height is the number of terminal rows a rendered card occupies
const Height = 8

// StatusLabel returns the badge text for a story
func StatusLabel(s domain.Story) string {
	return strings.ToUpper(string(s.EffectiveStatus()))
}

// Title returns the card title, falling back to a default
func Title(s domain.Story) string {
	if strings.TrimSpace(s.Title) == "" {
		return domain.DefaultCardTitle
	}
	return s.Title
}

// Render draws the card at the given outer width
func Render(s domain.Story, width int, selected bool) string {
	t := theme.Current
	styles := theme.NewStyles()

	box := styles.Card
	if selected {
		box = styles.CardSelected
	}
	inner := max(10, width-box.GetHorizontalFrameSize())

	badge := styles.Badge(s.EffectiveStatus()).Render(StatusLabel(s))

	titleStyle := lipgloss.NewStyle().Foreground(t.Foreground).Bold(true)
	if selected {
		titleStyle = titleStyle.Foreground(t.Highlight)
	}
	title := titleStyle.Render(util.Truncate(Title(s), inner))

	subtitle := ""
	if adv := s.AdventureTitle(); adv != "" {
		subtitle = styles.Subtitle.Render(util.Truncate(adv, inner))
	}

	desc := s.Description
	if strings.TrimSpace(desc) == "" {
		desc = domain.DefaultDescription
	}
	description := styles.Muted.Render(util.Truncate(desc, inner*2-2))
	description = lipgloss.NewStyle().Width(inner).Height(2).MaxHeight(2).Render(description)

	image := lipgloss.NewStyle().Foreground(t.Info).Render(
		util.Truncate(imageurl.Resolve(s.Image.Value(), imageurl.CardPlaceholder), inner),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, badge, title, subtitle, description, image)
	return box.Width(inner + box.GetHorizontalPadding()).Height(Height - box.GetVerticalFrameSize()).Render(body)
}
