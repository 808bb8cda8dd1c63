// Package compile turns a validated deck into the ordered render-operation
// stream the presentation engine executes. Compilation is pure and
// deterministic: the same deck and timestamp always yield a byte-identical
// stream, so recompiles can be diffed and resubmitted safely. It also never
// fails: malformed colors, missing content and unknown layouts all degrade to
// documented fallbacks, because a broken presentation is worse than a
// suboptimal one.
package compile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avelinec/deckwright/internal/deck"
)

// Compiler lays out decks against a fixed page geometry.
type Compiler struct {
	geo Geometry
}

// New returns a Compiler for the given geometry; zero fields fall back to the
// engine's standard page.
func New(geo Geometry) *Compiler {
	if geo.Width <= 0 {
		geo.Width = DefaultGeometry.Width
	}
	if geo.Height <= 0 {
		geo.Height = DefaultGeometry.Height
	}
	if geo.Margin <= 0 {
		geo.Margin = DefaultGeometry.Margin
	}
	return &Compiler{geo: geo}
}

// Compile emits the full render stream for a deck. generatedAt feeds the
// title-page subtitle; callers pass a fixed timestamp to keep recompiles
// byte-identical.
func (c *Compiler) Compile(d deck.Deck, generatedAt time.Time) []Op {
	s := &stream{}

	c.compileTitlePage(s, d, generatedAt)
	for i, slide := range d.Slides {
		c.compileSlide(s, d, slide, i)
	}

	return s.ops
}

// PageID returns the deterministic container identifier for a content slide
// position (0-based). The title page is always "slide_000".
func PageID(contentIndex int) string {
	return fmt.Sprintf("slide_%03d", contentIndex+1)
}

func (c *Compiler) compileTitlePage(s *stream, d deck.Deck, generatedAt time.Time) {
	const pageID = "slide_000"
	titleID := pageID + "_title"
	subtitleID := pageID + "_subtitle"

	s.container(pageID, "")
	s.background(pageID, d.Theme.BackgroundColor)

	titleBox := box{x: 60, y: 160, w: c.geo.Width - 120, h: 120}
	s.textBox(titleID, pageID, titleBox)
	s.insertText(titleID, d.PresentationTitle)
	s.textColor(titleID, d.Theme.TextColor)
	s.textAlign(titleID, deck.AlignCenter)
	s.fontSize(titleID, FitFontSize(d.PresentationTitle, titleBox.w, titleBox.h, 44, 28))

	subtitleBox := box{x: c.geo.Width/2 - 180, y: 300, w: 360, h: 48}
	s.textBox(subtitleID, pageID, subtitleBox)
	s.insertText(subtitleID, generatedAt.Format("January 2, 2006"))
	if d.Theme.AccentColor != "" {
		s.textColor(subtitleID, d.Theme.AccentColor)
	} else {
		s.textColor(subtitleID, d.Theme.TextColor)
	}
	s.textAlign(subtitleID, deck.AlignCenter)
	s.fontSize(subtitleID, 18)
}

func (c *Compiler) compileSlide(s *stream, d deck.Deck, sl deck.Slide, index int) {
	pageID := PageID(index)

	s.container(pageID, strings.TrimSpace(sl.Notes))
	s.background(pageID, d.Theme.BackgroundColor)

	switch sl.Layout {
	case deck.LayoutSectionHeader:
		c.compileSectionHeader(s, d, sl, pageID)
	case deck.LayoutParagraph:
		c.compileParagraph(s, d, sl, pageID)
	case deck.LayoutTwoColumn:
		c.compileTwoColumn(s, d, sl, pageID)
	case deck.LayoutQuote:
		c.compileQuote(s, d, sl, pageID)
	default:
		// Every layout without an explicit treatment renders as title + body.
		c.compileTitleAndBody(s, d, sl, pageID)
	}
}

func (c *Compiler) compileSectionHeader(s *stream, d deck.Deck, sl deck.Slide, pageID string) {
	title := strings.TrimSpace(sl.Title)
	if title == "" {
		return
	}
	b := box{x: c.geo.Margin, y: c.geo.Height/2 - 60, w: c.geo.Width - c.geo.Margin*2, h: 120}
	id := pageID + "_title"
	s.textBox(id, pageID, b)
	s.insertText(id, title)
	s.textColor(id, styleColor(sl.TitleStyle, d.Theme.TextColor))
	s.textAlign(id, styleAlign(sl.TitleStyle, deck.AlignCenter))
	s.fontSize(id, styleSize(sl.TitleStyle, FitFontSize(title, b.w, b.h, 40, 26)))
	s.bold(id)
}

func (c *Compiler) compileParagraph(s *stream, d deck.Deck, sl deck.Slide, pageID string) {
	c.emitHeading(s, d, sl, pageID, box{x: c.geo.Margin, y: c.geo.Margin, w: c.geo.Width - c.geo.Margin*2, h: 64}, 24, 18)

	bodyText := strings.TrimSpace(sl.Paragraph)
	if bodyText == "" {
		bodyText = strings.Join(nonEmpty(sl.Bullets), " ")
	}
	if bodyText == "" {
		return
	}

	b := box{x: c.geo.Margin, y: 120, w: c.geo.Width - c.geo.Margin*2, h: c.geo.Height - 160}
	id := pageID + "_body"
	s.textBox(id, pageID, b)
	s.insertText(id, bodyText)
	s.textColor(id, styleColor(sl.BodyStyle, d.Theme.TextColor))
	s.fontSize(id, styleSize(sl.BodyStyle, FitFontSize(bodyText, b.w, b.h, 18, 12)))
	s.textAlign(id, styleAlign(sl.BodyStyle, deck.AlignJustified))
}

func (c *Compiler) compileTwoColumn(s *stream, d deck.Deck, sl deck.Slide, pageID string) {
	c.emitHeading(s, d, sl, pageID, box{x: c.geo.Margin, y: 22, w: c.geo.Width - c.geo.Margin*2, h: 54}, 24, 16)

	bullets := nonEmpty(sl.Bullets)
	half := int(math.Ceil(float64(len(bullets)) / 2))
	left, right := bullets[:half], bullets[half:]

	colWidth := (c.geo.Width-c.geo.Margin*2)/2 - 12
	colHeight := c.geo.Height - 132

	if len(left) > 0 {
		c.emitColumn(s, d, sl, pageID+"_col1", pageID, left,
			box{x: c.geo.Margin, y: 96, w: colWidth, h: colHeight})
	}
	if len(right) > 0 {
		c.emitColumn(s, d, sl, pageID+"_col2", pageID, right,
			box{x: c.geo.Margin + (c.geo.Width-c.geo.Margin*2)/2 + 12, y: 96, w: colWidth, h: colHeight})
	}
}

func (c *Compiler) emitColumn(s *stream, d deck.Deck, sl deck.Slide, id, pageID string, items []string, b box) {
	text := bulletLines(items)
	s.textBox(id, pageID, b)
	s.insertText(id, text)
	s.textColor(id, styleColor(sl.BodyStyle, d.Theme.TextColor))
	s.fontSize(id, styleSize(sl.BodyStyle, FitFontSize(text, b.w, b.h, 18, 12)))
	s.bullets(id)
}

func (c *Compiler) compileQuote(s *stream, d deck.Deck, sl deck.Slide, pageID string) {
	quote := strings.TrimSpace(sl.Quote)
	if quote == "" {
		if bullets := nonEmpty(sl.Bullets); len(bullets) > 0 {
			quote = bullets[0]
		}
	}

	if quote != "" {
		b := box{x: 80, y: 160, w: c.geo.Width - 160, h: 260}
		id := pageID + "_body"
		s.textBox(id, pageID, b)
		s.insertText(id, "“"+quote+"”")
		s.textColor(id, styleColor(sl.BodyStyle, d.Theme.TextColor))
		s.fontSize(id, styleSize(sl.BodyStyle, FitFontSize(quote, b.w, b.h, 28, 16)))
		s.italic(id)
		s.textAlign(id, styleAlign(sl.BodyStyle, deck.AlignCenter))
	}

	if title := strings.TrimSpace(sl.Title); title != "" {
		b := box{x: c.geo.Margin, y: 40, w: c.geo.Width - c.geo.Margin*2, h: 50}
		id := pageID + "_title"
		s.textBox(id, pageID, b)
		s.insertText(id, title)
		accent := d.Theme.AccentColor
		if accent == "" {
			accent = d.Theme.TextColor
		}
		s.textColor(id, styleColor(sl.TitleStyle, accent))
		s.fontSize(id, styleSize(sl.TitleStyle, FitFontSize(title, b.w, b.h, 20, 14)))
	}
}

func (c *Compiler) compileTitleAndBody(s *stream, d deck.Deck, sl deck.Slide, pageID string) {
	c.emitHeading(s, d, sl, pageID, box{x: c.geo.Margin, y: 40, w: c.geo.Width - c.geo.Margin*2, h: 60}, 24, 16)

	bullets := nonEmpty(sl.Bullets)
	bodyID := pageID + "_body"

	if len(bullets) > 0 {
		text := bulletLines(bullets)
		b := box{x: c.geo.Margin, y: 120, w: c.geo.Width - c.geo.Margin*2, h: c.geo.Height - 160}
		s.textBox(bodyID, pageID, b)
		s.insertText(bodyID, text)
		s.textColor(bodyID, styleColor(sl.BodyStyle, d.Theme.TextColor))
		s.fontSize(bodyID, styleSize(sl.BodyStyle, FitFontSize(text, b.w, b.h, 18, 12)))
		if align := styleAlign(sl.BodyStyle, ""); align != "" {
			s.textAlign(bodyID, align)
		}
		s.bullets(bodyID)
		return
	}

	if paragraph := strings.TrimSpace(sl.Paragraph); paragraph != "" {
		b := box{x: c.geo.Margin, y: 120, w: c.geo.Width - c.geo.Margin*2, h: c.geo.Height - 160}
		s.textBox(bodyID, pageID, b)
		s.insertText(bodyID, paragraph)
		s.textColor(bodyID, styleColor(sl.BodyStyle, d.Theme.TextColor))
		s.fontSize(bodyID, styleSize(sl.BodyStyle, FitFontSize(paragraph, b.w, b.h, 18, 12)))
		if align := styleAlign(sl.BodyStyle, ""); align != "" {
			s.textAlign(bodyID, align)
		}
	}
}

// emitHeading renders the shared slide-title treatment: bold, text color,
// fitted size, with per-slide style overrides applied on top.
func (c *Compiler) emitHeading(s *stream, d deck.Deck, sl deck.Slide, pageID string, b box, base, floor int) {
	title := strings.TrimSpace(sl.Title)
	if title == "" {
		return
	}
	id := pageID + "_title"
	s.textBox(id, pageID, b)
	s.insertText(id, title)
	s.textColor(id, styleColor(sl.TitleStyle, d.Theme.TextColor))
	s.fontSize(id, styleSize(sl.TitleStyle, FitFontSize(title, b.w, b.h, base, floor)))
	if align := styleAlign(sl.TitleStyle, ""); align != "" {
		s.textAlign(id, align)
	}
	s.bold(id)
}

func styleSize(st *deck.TextStyle, fitted int) int {
	if st != nil && st.FontSize > 0 {
		return st.FontSize
	}
	return fitted
}

func styleAlign(st *deck.TextStyle, fallback deck.Alignment) deck.Alignment {
	if st != nil && st.Align != "" {
		return st.Align
	}
	return fallback
}

func styleColor(st *deck.TextStyle, fallback string) string {
	if st != nil && st.Color != "" {
		return st.Color
	}
	return fallback
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func bulletLines(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if strings.HasPrefix(item, "- ") {
			lines[i] = item
		} else {
			lines[i] = "- " + item
		}
	}
	return strings.Join(lines, "\n")
}
