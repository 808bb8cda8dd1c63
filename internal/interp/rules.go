package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/theme"
)

// rule pairs recognizer patterns with an applier. Patterns within a rule are
// tried in order; the first submatch slice found is handed to apply. Appliers
// may index into the slide list, so rules are refused on a zero-slide deck
// unless allowEmpty is set.
type rule struct {
	name       string
	patterns   []*regexp.Regexp
	allowEmpty bool
	apply      func(s *Session, m []string) string
}

func (r rule) match(line string) ([]string, bool) {
	for _, p := range r.patterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return m, true
		}
	}
	return nil, false
}

// rules is the complete grammar, in priority order. The first matching rule
// wins and later rules are never consulted, so ordering is part of the
// contract: reordering entries changes which phrasings reach which applier.
var rules = []rule{
	{
		name:       "undo",
		patterns:   compile(`^undo$`),
		allowEmpty: true,
		apply: func(s *Session, _ []string) string {
			prev, ok := s.history.pop()
			if !ok {
				return "Nothing to undo."
			}
			s.deck = prev
			s.active = s.deck.ClampIndex(s.active)
			return "Undid the last change."
		},
	},
	{
		name:     "goto",
		patterns: compile(`^(?:go to|switch to|open)\s+slide\s+(\d+)\b`),
		apply: func(s *Session, m []string) string {
			s.active = s.deck.ClampIndex(atoi(m[1]) - 1)
			return fmt.Sprintf("Now editing slide %d.", s.active+1)
		},
	},
	{
		name:     "retitle",
		patterns: compile(`^change\s+(title|subtitle)\s+(?:of\s+slide\s+(\d+)\s+)?to\s+(.+)$`),
		apply: func(s *Session, m []string) string {
			idx := s.slideIndex(m[2])
			text := unquote(m[3])
			s.mutate(func(d *deck.Deck) {
				if strings.EqualFold(m[1], "title") {
					d.Slides[idx].Title = text
				} else {
					d.Slides[idx].Subtitle = text
				}
			})
			return fmt.Sprintf("Set the %s of slide %d to %q.", strings.ToLower(m[1]), idx+1, text)
		},
	},
	{
		name:     "add-bullet",
		patterns: compile(`^add\s+bullet\s+(?:to\s+slide\s+(\d+)\s+)?(.+)$`),
		apply: func(s *Session, m []string) string {
			idx := s.slideIndex(m[1])
			text := unquote(m[2])
			s.mutate(func(d *deck.Deck) {
				sl := &d.Slides[idx]
				sl.Bullets = append(sl.Bullets, text)
				// Bullets and a paragraph are mutually exclusive content.
				sl.Paragraph = ""
			})
			return fmt.Sprintf("Added a bullet to slide %d.", idx+1)
		},
	},
	{
		name:     "replace-bullets",
		patterns: compile(`^replace\s+bullets\s+with\s*:\s*(.+)$`),
		apply: func(s *Session, m []string) string {
			items := splitList(m[1])
			idx := s.active
			s.mutate(func(d *deck.Deck) {
				d.Slides[idx].Bullets = items
				d.Slides[idx].Paragraph = ""
			})
			return fmt.Sprintf("Replaced the bullets on slide %d with %d new ones.", idx+1, len(items))
		},
	},
	{
		name:     "clear-bullets",
		patterns: compile(`^clear\s+bullets$`),
		apply: func(s *Session, _ []string) string {
			idx := s.active
			s.mutate(func(d *deck.Deck) {
				d.Slides[idx].Bullets = nil
			})
			return fmt.Sprintf("Cleared the bullets on slide %d.", idx+1)
		},
	},
	{
		name:     "set-paragraph",
		patterns: compile(`^set\s+paragraph\s+(?:of\s+slide\s+(\d+)\s+)?to\s+(.+)$`),
		apply: func(s *Session, m []string) string {
			idx := s.slideIndex(m[1])
			text := unquote(m[2])
			s.mutate(func(d *deck.Deck) {
				d.Slides[idx].Paragraph = text
				d.Slides[idx].Bullets = nil
			})
			return fmt.Sprintf("Set the paragraph on slide %d.", idx+1)
		},
	},
	{
		name:     "make-quote",
		patterns: compile(`^make\s+(?:slide\s+(\d+)\s+)?a\s+quote\s*:\s*(.+)$`),
		apply: func(s *Session, m []string) string {
			idx := s.slideIndex(m[1])
			text := unquote(m[2])
			s.mutate(func(d *deck.Deck) {
				sl := &d.Slides[idx]
				sl.Layout = deck.LayoutQuote
				sl.Quote = text
				sl.Bullets = nil
				sl.Paragraph = ""
			})
			return fmt.Sprintf("Turned slide %d into a quote.", idx+1)
		},
	},
	{
		name:     "set-layout",
		patterns: compile(`^set\s+layout\s+(?:of\s+slide\s+(\d+)\s+)?to\s+([a-zA-Z_ ]+)$`),
		apply: func(s *Session, m []string) string {
			idx := s.slideIndex(m[1])
			layout := layoutForKey(m[2])
			s.mutate(func(d *deck.Deck) {
				d.Slides[idx].Layout = layout
			})
			return fmt.Sprintf("Slide %d now uses the %s layout.", idx+1, layout)
		},
	},
	{
		name:     "set-color",
		patterns: compile(`^(?:switch|set)\s+(background|text|accent)\s+(?:color\s+)?to\s+([#a-zA-Z0-9]+)$`),
		apply: func(s *Session, m []string) string {
			hex, ok := theme.ResolveColor(m[2])
			if !ok {
				return fmt.Sprintf("I don't know the color %q. Try a name like blue or a hex value like #2563eb.", m[2])
			}
			target := strings.ToLower(m[1])
			s.mutate(func(d *deck.Deck) {
				switch target {
				case "background":
					d.Theme.BackgroundColor = hex
				case "text":
					d.Theme.TextColor = hex
				case "accent":
					d.Theme.AccentColor = hex
				}
			})
			return fmt.Sprintf("Set the %s color to %s.", target, hex)
		},
	},
	{
		name:     "font-size",
		patterns: compile(`^(title|body)\s+size\s+(\d{1,3})\b`),
		apply: func(s *Session, m []string) string {
			size := clampInt(atoi(m[2]), 8, 96)
			idx := s.active
			title := strings.EqualFold(m[1], "title")
			s.mutate(func(d *deck.Deck) {
				st := styleFor(&d.Slides[idx], title)
				st.FontSize = size
			})
			return fmt.Sprintf("%s size on slide %d is now %dpt.", capitalize(m[1]), idx+1, size)
		},
	},
	{
		name:     "align",
		patterns: compile(`^align\s+(title|body)\s+(left|right|center|justified)\b`),
		apply: func(s *Session, m []string) string {
			align := alignments[strings.ToLower(m[2])]
			idx := s.active
			title := strings.EqualFold(m[1], "title")
			s.mutate(func(d *deck.Deck) {
				st := styleFor(&d.Slides[idx], title)
				st.Align = align
			})
			return fmt.Sprintf("Aligned the %s on slide %d %s.", strings.ToLower(m[1]), idx+1, strings.ToLower(m[2]))
		},
	},
	{
		name: "emphasis",
		patterns: compile(
			`^(?:make|set)\s+"([^"]+)"\s+(bold|italic|underlined)\s*(?:in\s+(title|body))?$`,
			`^(?:make|set)\s+'([^']+)'\s+(bold|italic|underlined)\s*(?:in\s+(title|body))?$`,
			`^(?:make|set)\s+(.+?)\s+(bold|italic|underlined)\s*(?:in\s+(title|body))?$`,
		),
		apply: func(s *Session, m []string) string {
			term := strings.TrimSpace(m[1])
			if term == "" {
				return helpMessage
			}
			style := strings.ToLower(m[2])
			target := strings.ToLower(m[3])
			if target == "" {
				target = "body"
			}
			idx := s.active
			s.mutate(func(d *deck.Deck) {
				st := styleFor(&d.Slides[idx], target == "title")
				switch style {
				case "bold":
					st.Bold = appendTerm(st.Bold, term)
				case "italic":
					st.Italic = appendTerm(st.Italic, term)
				default:
					st.Underline = appendTerm(st.Underline, term)
				}
			})
			return fmt.Sprintf("Made %q %s in the %s of slide %d.", term, style, target, idx+1)
		},
	},
}

// layoutKeys maps spoken layout names to their tags. Anything unrecognized
// falls back to the title-and-body layout rather than failing.
var layoutKeys = map[string]deck.Layout{
	"two_column":     deck.LayoutTwoColumn,
	"paragraph":      deck.LayoutParagraph,
	"quote":          deck.LayoutQuote,
	"section_header": deck.LayoutSectionHeader,
	"title_and_body": deck.LayoutTitleAndBody,
	"title_only":     deck.LayoutTitleOnly,
}

var alignments = map[string]deck.Alignment{
	"left":      deck.AlignStart,
	"right":     deck.AlignEnd,
	"center":    deck.AlignCenter,
	"justified": deck.AlignJustified,
}

func layoutForKey(key string) deck.Layout {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(key))), "_")
	if layout, ok := layoutKeys[normalized]; ok {
		return layout
	}
	return deck.LayoutTitleAndBody
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

var surroundingQuotes = regexp.MustCompile(`^"(.*)"$`)

func unquote(s string) string {
	return surroundingQuotes.ReplaceAllString(strings.TrimSpace(s), "$1")
}

// splitList breaks a spoken enumeration on semicolons or commas.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func styleFor(sl *deck.Slide, title bool) *deck.TextStyle {
	if title {
		return sl.EnsureTitleStyle()
	}
	return sl.EnsureBodyStyle()
}

func appendTerm(terms []string, term string) []string {
	for _, t := range terms {
		if t == term {
			return terms
		}
	}
	return append(terms, term)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
