package genai

import (
	"fmt"
	"strings"

	"github.com/avelinec/deckwright/internal/theme"
)

// BuildDeckPrompt renders the deck-authoring prompt for a source document.
// The prompt pins the output contract hard because the extraction pipeline
// downstream only guarantees recovery from small syntactic slips.
func BuildDeckPrompt(sourceText, sourceName string, numSlides int, themeKey string) string {
	preset := theme.Preset(themeKey)

	var b strings.Builder
	b.WriteString("You are producing a single JSON object describing a slide deck.\n")
	b.WriteString("Return ONLY valid RFC 8259 JSON. No markdown. No comments. No extra text.\n\n")

	fmt.Fprintf(&b, "Create exactly %d slides from the source text below.\n", numSlides)
	b.WriteString("Constraints:\n")
	b.WriteString("- slide titles <= 70 characters\n")
	b.WriteString("- at most 6 bullets per slide, each <= 140 characters\n")
	b.WriteString("- prefer high-signal content, not boilerplate\n")
	b.WriteString("- if unsure about any value, use null or []\n\n")

	b.WriteString("Allowed layouts: TITLE_SLIDE, TABLE_OF_CONTENTS, CONCLUSION, APPENDIX, ")
	b.WriteString("TITLE_AND_BODY, PARAGRAPH, TWO_COLUMN, SECTION_HEADER, QUOTE, TITLE_ONLY, ")
	b.WriteString("ONE_COLUMN_TEXT, MAIN_POINT, SECTION_AND_DESC, CAPTION, BIG_NUMBER\n\n")

	fmt.Fprintf(&b, "Theme: use backgroundColor %q, textColor %q, accentColor %q.\n\n",
		preset.BackgroundColor, preset.TextColor, preset.AccentColor)

	b.WriteString("Output shape:\n")
	b.WriteString(`{
  "presentationTitle": string,
  "slidesCount": integer,
  "theme": {"backgroundColor": string, "textColor": string, "accentColor": string},
  "slides": [
    {
      "layout": string,
      "title": string|null,
      "subtitle": string|null,
      "bullets": [string],
      "paragraph": string|null,
      "quote": string|null,
      "notes": string|null
    }
  ]
}
`)

	fmt.Fprintf(&b, "\nSource document (%s):\n%s\n", sourceName, sourceText)
	return b.String()
}

// BuildRepairPrompt renders the single-shot JSON repair instruction.
func BuildRepairPrompt(broken string) string {
	var b strings.Builder
	b.WriteString("The following text was supposed to be a single valid JSON object but is not.\n")
	b.WriteString("Return ONLY the corrected JSON object. No explanation, no markdown fences.\n\n")
	b.WriteString(broken)
	return b.String()
}
