package interp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelinec/deckwright/internal/deck"
)

func threeSlideDeck() deck.Deck {
	return deck.Deck{
		PresentationTitle: "Currents",
		SlidesCount:       3,
		Theme: deck.Theme{
			BackgroundColor: "#ffffff",
			TextColor:       "#202124",
			AccentColor:     "#1a73e8",
		},
		Slides: []deck.Slide{
			{Layout: deck.LayoutTitleAndBody, Title: "One", Bullets: []string{"a", "b"}},
			{Layout: deck.LayoutTitleAndBody, Title: "Two", Paragraph: "some prose"},
			{Layout: deck.LayoutSectionHeader, Title: "Three"},
		},
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(threeSlideDeck(), nil)
}

func TestChangeTitleOfNumberedSlide(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("change title of slide 2 to Ocean Basics")

	require.True(t, res.Changed)
	require.Equal(t, "Ocean Basics", res.Deck.Slides[1].Title)
	require.Equal(t, "One", res.Deck.Slides[0].Title)
	require.Equal(t, "Three", res.Deck.Slides[2].Title)
}

func TestChangeTitleDefaultsToActiveSlide(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	s.Apply("go to slide 3")
	res := s.Apply("change title to Closing")

	require.Equal(t, "Closing", res.Deck.Slides[2].Title)
}

func TestChangeSubtitleStripsSurroundingQuotes(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply(`change subtitle to "A Field Guide"`)

	require.Equal(t, "A Field Guide", res.Deck.Slides[0].Subtitle)
}

func TestOutOfRangeSlideIndexIsClamped(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("change title of slide 99 to Last")

	require.Equal(t, "Last", res.Deck.Slides[2].Title)
}

func TestGoToSlideMovesActiveIndex(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("go to slide 2")

	require.False(t, res.Changed)
	require.Equal(t, 1, s.ActiveIndex())

	s.Apply("switch to slide 99")
	require.Equal(t, 2, s.ActiveIndex())
}

func TestReplaceBulletsClearsParagraph(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	s.Apply("go to slide 2")
	res := s.Apply("replace bullets with: A; B; C")

	require.Equal(t, []string{"A", "B", "C"}, res.Deck.Slides[1].Bullets)
	require.Empty(t, res.Deck.Slides[1].Paragraph)
}

func TestReplaceBulletsSplitsOnCommasToo(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("replace bullets with: alpha, beta, gamma")

	require.Equal(t, []string{"alpha", "beta", "gamma"}, res.Deck.Slides[0].Bullets)
}

func TestAddBulletClearsParagraph(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("add bullet to slide 2 key finding")

	require.Equal(t, []string{"key finding"}, res.Deck.Slides[1].Bullets)
	require.Empty(t, res.Deck.Slides[1].Paragraph)
}

func TestClearBullets(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("clear bullets")

	require.Empty(t, res.Deck.Slides[0].Bullets)
}

func TestSetParagraphClearsBullets(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("set paragraph to The gulf stream moderates European winters.")

	require.Equal(t, "The gulf stream moderates European winters.", res.Deck.Slides[0].Paragraph)
	require.Empty(t, res.Deck.Slides[0].Bullets)
}

func TestMakeQuoteForcesLayoutAndClearsContent(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("make slide 1 a quote: Salt water cures everything")

	sl := res.Deck.Slides[0]
	require.Equal(t, deck.LayoutQuote, sl.Layout)
	require.Equal(t, "Salt water cures everything", sl.Quote)
	require.Empty(t, sl.Bullets)
	require.Empty(t, sl.Paragraph)
}

func TestSetLayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		command string
		want    deck.Layout
	}{
		{"set layout to two column", deck.LayoutTwoColumn},
		{"set layout to section header", deck.LayoutSectionHeader},
		{"set layout of slide 2 to quote", deck.LayoutQuote},
		{"set layout to hexagon grid", deck.LayoutTitleAndBody},
	}

	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			t.Parallel()

			s := newSession(t)
			res := s.Apply(tc.command)
			idx := 0
			if tc.command == "set layout of slide 2 to quote" {
				idx = 1
			}
			require.Equal(t, tc.want, res.Deck.Slides[idx].Layout)
		})
	}
}

func TestThemeColorsByNameAndHex(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	res := s.Apply("switch background to navy")
	require.Equal(t, "#0B1B2B", res.Deck.Theme.BackgroundColor)

	res = s.Apply("set accent color to #ff00aa")
	require.Equal(t, "#ff00aa", res.Deck.Theme.AccentColor)

	res = s.Apply("set text color to red")
	require.Equal(t, "#EF4444", res.Deck.Theme.TextColor)
}

func TestUnknownColorLeavesDeckUntouched(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	before := s.Deck()
	res := s.Apply("switch background to chartreuseish")

	require.False(t, res.Changed)
	require.Equal(t, before, res.Deck)
	require.Contains(t, res.Message, "chartreuseish")
}

func TestFontSizeIsClamped(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	res := s.Apply("title size 36")
	require.Equal(t, 36, res.Deck.Slides[0].TitleStyle.FontSize)

	res = s.Apply("body size 2")
	require.Equal(t, 8, res.Deck.Slides[0].BodyStyle.FontSize)

	res = s.Apply("title size 400")
	require.Equal(t, 96, res.Deck.Slides[0].TitleStyle.FontSize)
}

func TestAlign(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	res := s.Apply("align body center")
	require.Equal(t, deck.AlignCenter, res.Deck.Slides[0].BodyStyle.Align)

	res = s.Apply("align title right")
	require.Equal(t, deck.AlignEnd, res.Deck.Slides[0].TitleStyle.Align)
}

func TestEmphasisAppendsTermOnce(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	res := s.Apply(`make 'ATP' bold in body`)
	require.Equal(t, []string{"ATP"}, res.Deck.Slides[0].BodyStyle.Bold)

	res = s.Apply(`make "ATP" bold in body`)
	require.Equal(t, []string{"ATP"}, res.Deck.Slides[0].BodyStyle.Bold)

	res = s.Apply("make mitochondria italic in title")
	require.Equal(t, []string{"mitochondria"}, res.Deck.Slides[0].TitleStyle.Italic)
}

func TestEmphasisDefaultsToBody(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("make enzymes underlined")

	require.Equal(t, []string{"enzymes"}, res.Deck.Slides[0].BodyStyle.Underline)
}

func TestRuleOrderParagraphBeatsEmphasis(t *testing.T) {
	t.Parallel()

	// "set paragraph to bold" is also a valid emphasis phrasing; the paragraph
	// rule sits earlier in the table and must win.
	s := newSession(t)
	res := s.Apply("set paragraph to bold")

	require.Equal(t, "bold", res.Deck.Slides[0].Paragraph)
	require.Empty(t, res.Deck.Slides[0].BodyStyle)
}

func TestUnrecognizedCommandReturnsHelp(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	before := s.Deck()
	res := s.Apply("make it pretty")

	require.False(t, res.Changed)
	require.Equal(t, before, res.Deck)
	require.Contains(t, res.Message, "change title of slide 2 to Ocean Basics")
}

func TestUndoRestoresPriorDeck(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	before := s.Deck()

	s.Apply("change title of slide 1 to Altered")
	res := s.Apply("undo")

	require.Equal(t, before, res.Deck)
}

func TestUndoWithEmptyHistory(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	before := s.Deck()
	res := s.Apply("undo")

	require.False(t, res.Changed)
	require.Equal(t, before, res.Deck)
	require.Equal(t, "Nothing to undo.", res.Message)
}

func TestHistoryIsBounded(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	for i := 0; i < HistoryLimit+10; i++ {
		s.Apply(fmt.Sprintf("change title of slide 1 to Title %d", i))
	}
	require.Equal(t, HistoryLimit, s.UndoDepth())

	for i := 0; i < HistoryLimit; i++ {
		res := s.Apply("undo")
		require.True(t, res.Changed)
	}
	// The ten oldest snapshots were evicted, so undo bottoms out here.
	require.Equal(t, "Nothing to undo.", s.Apply("undo").Message)
	require.Equal(t, "Title 9", s.Deck().Slides[0].Title)
}

func TestMutationDoesNotAliasCallerDeck(t *testing.T) {
	t.Parallel()

	original := threeSlideDeck()
	s := NewSession(original, nil)
	s.Apply("change title of slide 1 to Mutated")

	require.Equal(t, "One", original.Slides[0].Title)
}

func TestZeroSlideDeckRefusesContentCommands(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.Deck{PresentationTitle: "Empty"}, nil)
	commands := []string{
		"add bullet hello",
		"change title to X",
		"change title of slide 2 to Y",
		"replace bullets with: A; B",
		"clear bullets",
		"set paragraph to text",
		"make slide 1 a quote: q",
		"set layout to two column",
		"switch background to red",
		"title size 20",
		"align body center",
		"make 'ATP' bold in body",
		"go to slide 2",
	}
	for _, cmd := range commands {
		res := s.Apply(cmd)
		require.False(t, res.Changed, cmd)
		require.Empty(t, res.Deck.Slides, cmd)
		require.Equal(t, emptyDeckMessage, res.Message, cmd)
	}

	require.Equal(t, "Nothing to undo.", s.Apply("undo").Message)
}

func TestSlidesCountStaysDerived(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	res := s.Apply("change title of slide 1 to X")

	require.Equal(t, len(res.Deck.Slides), res.Deck.SlidesCount)
}
