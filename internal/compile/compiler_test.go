package compile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avelinec/deckwright/internal/deck"
)

var fixedTime = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

func testDeck() deck.Deck {
	return deck.Deck{
		PresentationTitle: "Ocean Currents",
		SlidesCount:       4,
		Theme: deck.Theme{
			BackgroundColor: "#0b132b",
			TextColor:       "#e0e1dd",
			AccentColor:     "#00a8e8",
		},
		Slides: []deck.Slide{
			{Layout: deck.LayoutTitleAndBody, Title: "Overview", Bullets: []string{"Gulf Stream", "Kuroshio", "Humboldt"}},
			{Layout: deck.LayoutTwoColumn, Title: "Pairs", Bullets: []string{"A", "B", "C", "D", "E"}},
			{Layout: deck.LayoutQuote, Title: "Attribution", Quote: "The cure for anything is salt water."},
			{Layout: deck.LayoutSectionHeader, Title: "Part Two"},
		},
	}
}

func opsByKind(ops []Op, kind Kind) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func findOp(t *testing.T, ops []Op, kind Kind, objectID string) Op {
	t.Helper()
	for _, op := range ops {
		if op.Kind == kind && op.ObjectID == objectID {
			return op
		}
	}
	t.Fatalf("no %s op for %s", kind, objectID)
	return Op{}
}

func TestCompileIsDeterministic(t *testing.T) {
	t.Parallel()

	c := New(DefaultGeometry)
	d := testDeck()

	first, err := json.Marshal(c.Compile(d, fixedTime))
	require.NoError(t, err)
	second, err := json.Marshal(c.Compile(d, fixedTime))
	require.NoError(t, err)

	require.Equal(t, string(first), string(second), "recompiling an unchanged deck must be byte-identical")
}

func TestCompileEmitsTitlePageFirst(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)

	require.Equal(t, OpCreateContainer, ops[0].Kind)
	require.Equal(t, "slide_000", ops[0].ObjectID)

	title := findOp(t, ops, OpInsertText, "slide_000_title")
	require.Equal(t, "Ocean Currents", title.Text)
	require.Equal(t, deck.AlignCenter, findOp(t, ops, OpSetTextAlign, "slide_000_title").Align)

	subtitle := findOp(t, ops, OpInsertText, "slide_000_subtitle")
	require.Equal(t, "March 14, 2025", subtitle.Text)
	require.Equal(t, 18, findOp(t, ops, OpSetFontSize, "slide_000_subtitle").FontSize)
}

func TestCompileContainerIDsAreStable(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)
	containers := opsByKind(ops, OpCreateContainer)

	require.Len(t, containers, 5)
	require.Equal(t, "slide_000", containers[0].ObjectID)
	require.Equal(t, "slide_001", containers[1].ObjectID)
	require.Equal(t, "slide_004", containers[4].ObjectID)
}

func TestCompileTitleAndBody(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)

	body := findOp(t, ops, OpInsertText, "slide_001_body")
	require.Equal(t, "- Gulf Stream\n- Kuroshio\n- Humboldt", body.Text)
	findOp(t, ops, OpApplyBulletFormatting, "slide_001_body")
	findOp(t, ops, OpSetBold, "slide_001_title")
}

func TestCompileTwoColumnSplitsAtCeilHalf(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)

	left := findOp(t, ops, OpInsertText, "slide_002_col1")
	right := findOp(t, ops, OpInsertText, "slide_002_col2")
	require.Equal(t, "- A\n- B\n- C", left.Text)
	require.Equal(t, "- D\n- E", right.Text)

	leftBox := findOp(t, ops, OpCreateTextBox, "slide_002_col1")
	rightBox := findOp(t, ops, OpCreateTextBox, "slide_002_col2")
	require.Less(t, leftBox.X, rightBox.X)
	require.Equal(t, leftBox.Width, rightBox.Width)
}

func TestCompileQuote(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)

	body := findOp(t, ops, OpInsertText, "slide_003_body")
	require.Equal(t, "“The cure for anything is salt water.”", body.Text)
	findOp(t, ops, OpSetItalic, "slide_003_body")
	require.Equal(t, deck.AlignCenter, findOp(t, ops, OpSetTextAlign, "slide_003_body").Align)

	// Quote title takes the accent color.
	titleColor := findOp(t, ops, OpSetTextColor, "slide_003_title")
	require.InDelta(t, 0xa8/255.0, titleColor.Color.Green, 1e-9)
}

func TestCompileQuoteFallsBackToFirstBullet(t *testing.T) {
	t.Parallel()

	d := testDeck()
	d.Slides = []deck.Slide{{Layout: deck.LayoutQuote, Bullets: []string{"fallback line"}}}

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	body := findOp(t, ops, OpInsertText, "slide_001_body")
	require.Equal(t, "“fallback line”", body.Text)
}

func TestCompileSectionHeaderRendersOnlyTitle(t *testing.T) {
	t.Parallel()

	ops := New(DefaultGeometry).Compile(testDeck(), fixedTime)

	findOp(t, ops, OpInsertText, "slide_004_title")
	for _, op := range ops {
		require.NotEqual(t, "slide_004_body", op.ObjectID)
	}
}

func TestCompileUnknownLayoutFallsBack(t *testing.T) {
	t.Parallel()

	d := testDeck()
	d.Slides = []deck.Slide{{Layout: deck.LayoutBigNumber, Title: "42%", Paragraph: "of respondents agreed"}}

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	body := findOp(t, ops, OpInsertText, "slide_001_body")
	require.Equal(t, "of respondents agreed", body.Text)
}

func TestCompileInconsistentSlideDegradesGracefully(t *testing.T) {
	t.Parallel()

	// A quote slide with no quote and no bullets renders nothing for the body
	// region but still produces the container.
	d := testDeck()
	d.Slides = []deck.Slide{{Layout: deck.LayoutQuote}}

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	containers := opsByKind(ops, OpCreateContainer)
	require.Len(t, containers, 2)
	for _, op := range ops {
		require.NotEqual(t, "slide_001_body", op.ObjectID)
	}
}

func TestCompileBadThemeColorNeverFails(t *testing.T) {
	t.Parallel()

	d := testDeck()
	d.Theme.BackgroundColor = "not-a-color"

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	bg := findOp(t, ops, OpSetBackground, "slide_000")
	require.Equal(t, 1.0, bg.Color.Red)
	require.Equal(t, 1.0, bg.Color.Green)
	require.Equal(t, 1.0, bg.Color.Blue)
}

func TestCompileStyleOverrides(t *testing.T) {
	t.Parallel()

	d := testDeck()
	d.Slides = []deck.Slide{{
		Layout:     deck.LayoutTitleAndBody,
		Title:      "T",
		Bullets:    []string{"a"},
		TitleStyle: &deck.TextStyle{FontSize: 36, Align: deck.AlignEnd},
		BodyStyle:  &deck.TextStyle{Color: "#ff0000"},
	}}

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	require.Equal(t, 36, findOp(t, ops, OpSetFontSize, "slide_001_title").FontSize)
	require.Equal(t, deck.AlignEnd, findOp(t, ops, OpSetTextAlign, "slide_001_title").Align)
	require.Equal(t, 1.0, findOp(t, ops, OpSetTextColor, "slide_001_body").Color.Red)
	require.Equal(t, 0.0, findOp(t, ops, OpSetTextColor, "slide_001_body").Color.Green)
}

func TestCompileNotesTravelOnContainer(t *testing.T) {
	t.Parallel()

	d := testDeck()
	d.Slides[0].Notes = "mention the 2023 survey"

	ops := New(DefaultGeometry).Compile(d, fixedTime)
	container := findOp(t, ops, OpCreateContainer, "slide_001")
	require.Equal(t, "mention the 2023 survey", container.Notes)
}
