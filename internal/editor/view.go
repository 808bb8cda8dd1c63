package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelinec/deckwright/internal/deck"
)

// View renders the active slide preview, the last interpreter message and the
// command prompt.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.session.Deck()
	idx := m.session.ActiveIndex()

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s — slide %d/%d", d.PresentationTitle, idx+1, len(d.Slides))))
	if len(d.Slides) > 0 {
		sections = append(sections, slideStyle.Render(renderSlide(d.Slides[idx])))
	}
	sections = append(sections, messageStyle.Render(m.message))
	sections = append(sections, m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderSlide(sl deck.Slide) string {
	var lines []string
	lines = append(lines, layoutStyle.Render(string(sl.Layout)))
	if sl.Title != "" {
		lines = append(lines, headingStyle.Render(sl.Title))
	}
	if sl.Subtitle != "" {
		lines = append(lines, dimStyle.Render(sl.Subtitle))
	}
	for _, b := range sl.Bullets {
		lines = append(lines, "• "+b)
	}
	if sl.Paragraph != "" {
		lines = append(lines, sl.Paragraph)
	}
	if sl.Quote != "" {
		lines = append(lines, quoteStyle.Render("“"+sl.Quote+"”"))
	}
	if sl.Notes != "" {
		lines = append(lines, dimStyle.Render("notes: "+sl.Notes))
	}
	return strings.Join(lines, "\n")
}
