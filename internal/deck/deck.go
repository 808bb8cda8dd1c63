package deck

// Alignment mirrors the presentation engine's paragraph alignment enum.
type Alignment string

const (
	AlignStart     Alignment = "START"
	AlignCenter    Alignment = "CENTER"
	AlignEnd       Alignment = "END"
	AlignJustified Alignment = "JUSTIFIED"
)

// Layout selects which content regions a slide uses.
type Layout string

const (
	LayoutTitleSlide      Layout = "TITLE_SLIDE"
	LayoutTableOfContents Layout = "TABLE_OF_CONTENTS"
	LayoutConclusion      Layout = "CONCLUSION"
	LayoutAppendix        Layout = "APPENDIX"
	LayoutTitleAndBody    Layout = "TITLE_AND_BODY"
	LayoutParagraph       Layout = "PARAGRAPH"
	LayoutTwoColumn       Layout = "TWO_COLUMN"
	LayoutSectionHeader   Layout = "SECTION_HEADER"
	LayoutQuote           Layout = "QUOTE"
	LayoutTitleOnly       Layout = "TITLE_ONLY"
	LayoutOneColumnText   Layout = "ONE_COLUMN_TEXT"
	LayoutMainPoint       Layout = "MAIN_POINT"
	LayoutSectionAndDesc  Layout = "SECTION_AND_DESC"
	LayoutCaption         Layout = "CAPTION"
	LayoutBigNumber       Layout = "BIG_NUMBER"
)

// Layouts lists every recognized layout tag.
var Layouts = []Layout{
	LayoutTitleSlide, LayoutTableOfContents, LayoutConclusion, LayoutAppendix,
	LayoutTitleAndBody, LayoutParagraph, LayoutTwoColumn, LayoutSectionHeader,
	LayoutQuote, LayoutTitleOnly, LayoutOneColumnText, LayoutMainPoint,
	LayoutSectionAndDesc, LayoutCaption, LayoutBigNumber,
}

// TextStyle describes per-region text styling. Bold, Italic and Underline are
// sets of literal substrings to emphasize wherever they occur in the region's
// text, not boolean flags.
type TextStyle struct {
	FontFamily string    `json:"fontFamily,omitempty"`
	FontSize   int       `json:"fontSize,omitempty" validate:"omitempty,gt=0"`
	Color      string    `json:"color,omitempty" validate:"omitempty,hex_color"`
	Align      Alignment `json:"align,omitempty" validate:"omitempty,oneof=START CENTER END JUSTIFIED"`
	Bold       []string  `json:"bold,omitempty"`
	Italic     []string  `json:"italic,omitempty"`
	Underline  []string  `json:"underline,omitempty"`
}

// Theme holds deck-wide colors. Fields are hex strings (#RRGGBB) or empty.
type Theme struct {
	BackgroundColor    string `json:"backgroundColor,omitempty" validate:"omitempty,hex_color"`
	TextColor          string `json:"textColor,omitempty" validate:"omitempty,hex_color"`
	AccentColor        string `json:"accentColor,omitempty" validate:"omitempty,hex_color"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty" validate:"omitempty,url"`
}

// Slide carries the full field set regardless of layout; fields that do not
// apply to the layout stay empty. The compiler degrades gracefully when a
// slide's content disagrees with its tag.
type Slide struct {
	Layout     Layout     `json:"layout,omitempty" validate:"omitempty,slide_layout"`
	Title      string     `json:"title,omitempty"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Bullets    []string   `json:"bullets,omitempty"`
	Paragraph  string     `json:"paragraph,omitempty"`
	Quote      string     `json:"quote,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	TocItems   []string   `json:"tocItems,omitempty"`
	Citations  []string   `json:"citations,omitempty"`
	TitleStyle *TextStyle `json:"titleStyle,omitempty"`
	BodyStyle  *TextStyle `json:"bodyStyle,omitempty"`
}

// Deck is the full structured representation of a presentation.
// SlidesCount is derived: it always equals len(Slides) after Normalize.
type Deck struct {
	PresentationTitle string  `json:"presentationTitle"`
	SlidesCount       int     `json:"slidesCount"`
	Theme             Theme   `json:"theme"`
	Slides            []Slide `json:"slides" validate:"required,min=1,dive"`
}

// EnsureTitleStyle returns the slide's title style, allocating it if needed.
func (s *Slide) EnsureTitleStyle() *TextStyle {
	if s.TitleStyle == nil {
		s.TitleStyle = &TextStyle{}
	}
	return s.TitleStyle
}

// EnsureBodyStyle returns the slide's body style, allocating it if needed.
func (s *Slide) EnsureBodyStyle() *TextStyle {
	if s.BodyStyle == nil {
		s.BodyStyle = &TextStyle{}
	}
	return s.BodyStyle
}

// ClampIndex converts any 0-based index into the valid slide range.
func (d *Deck) ClampIndex(i int) int {
	if len(d.Slides) == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= len(d.Slides) {
		return len(d.Slides) - 1
	}
	return i
}

// Normalize enforces the derived-field invariants: SlidesCount always equals
// len(Slides), an absent title falls back to the supplied name, and an all-empty
// theme is replaced by the default.
func (d *Deck) Normalize(fallbackTitle string, defaultTheme Theme) {
	d.SlidesCount = len(d.Slides)
	if d.PresentationTitle == "" {
		d.PresentationTitle = fallbackTitle
	}
	if d.Theme == (Theme{}) {
		d.Theme = defaultTheme
	}
}

// Clone returns a deep copy. Mutations always work on a clone so prior
// snapshots on the undo history stay untouched.
func (d Deck) Clone() Deck {
	out := d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s.clone()
	}
	return out
}

func (s Slide) clone() Slide {
	out := s
	out.Bullets = cloneStrings(s.Bullets)
	out.TocItems = cloneStrings(s.TocItems)
	out.Citations = cloneStrings(s.Citations)
	out.TitleStyle = s.TitleStyle.clone()
	out.BodyStyle = s.BodyStyle.clone()
	return out
}

func (t *TextStyle) clone() *TextStyle {
	if t == nil {
		return nil
	}
	out := *t
	out.Bold = cloneStrings(t.Bold)
	out.Italic = cloneStrings(t.Italic)
	out.Underline = cloneStrings(t.Underline)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
