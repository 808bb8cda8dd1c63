// Package interp edits decks through a small fixed grammar of imperative
// sentences. Parsing is an ordered table of regex rules, not NLP: the first
// matching rule is applied and the rest are skipped, so the table's order is
// the grammar. Every mutation works on a deep copy of the deck with the
// pre-mutation snapshot pushed onto a bounded undo stack.
package interp

import (
	"reflect"
	"strings"

	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/logger"
)

const helpMessage = `I didn't catch that. Try: "change title of slide 2 to Ocean Basics", ` +
	`"replace bullets with: A; B; C", "switch background to navy", "title size 36", ` +
	`"align body center", "set layout to two column", "make 'ATP' bold in body", or "undo".`

const emptyDeckMessage = "The deck has no slides to edit."

// Session is a single editing conversation over one deck. It owns the active
// slide index and the undo history; both die with the session. Not safe for
// concurrent use.
type Session struct {
	deck    deck.Deck
	active  int
	history history
	log     *logger.Logger
}

// Result reports what one command did to the session.
type Result struct {
	Deck    deck.Deck
	Message string
	Changed bool
}

// NewSession starts editing a deck. The session keeps its own deep copy so the
// caller's value is never aliased.
func NewSession(d deck.Deck, log *logger.Logger) *Session {
	return &Session{deck: d.Clone(), log: log}
}

// Deck returns a deep copy of the current deck state.
func (s *Session) Deck() deck.Deck {
	return s.deck.Clone()
}

// ActiveIndex returns the 0-based slide currently targeted by commands that
// omit an explicit slide number.
func (s *Session) ActiveIndex() int {
	return s.active
}

// UndoDepth reports how many snapshots the undo stack currently holds.
func (s *Session) UndoDepth() int {
	return s.history.depth()
}

// Apply runs one command line against the session. Unrecognized input leaves
// the deck untouched and returns a help message listing valid phrasings;
// content commands against a deck with no slides are refused the same way
// rather than failing.
func (s *Session) Apply(line string) Result {
	cmd := strings.TrimSpace(line)
	if cmd == "" {
		return Result{Deck: s.Deck(), Message: helpMessage}
	}

	before := s.deck
	for _, r := range rules {
		m, ok := r.match(cmd)
		if !ok {
			continue
		}
		if !r.allowEmpty && len(s.deck.Slides) == 0 {
			return Result{Deck: s.Deck(), Message: emptyDeckMessage}
		}
		msg := r.apply(s, m)
		changed := !equalDecks(before, s.deck)
		s.log.WithFields(map[string]any{"rule": r.name, "changed": changed}).Debug("command applied")
		return Result{Deck: s.Deck(), Message: msg, Changed: changed}
	}

	s.log.Debug("command not recognized")
	return Result{Deck: s.Deck(), Message: helpMessage}
}

// mutate pushes the pre-mutation snapshot, then edits a fresh clone so earlier
// snapshots never see the change.
func (s *Session) mutate(fn func(d *deck.Deck)) {
	s.history.push(s.deck)
	next := s.deck.Clone()
	fn(&next)
	next.SlidesCount = len(next.Slides)
	s.deck = next
	s.active = s.deck.ClampIndex(s.active)
}

func equalDecks(a, b deck.Deck) bool {
	return reflect.DeepEqual(a, b)
}

// slideIndex resolves an optional 1-based capture group to a 0-based slide
// index, clamped into range; an empty group targets the active slide.
func (s *Session) slideIndex(group string) int {
	if group == "" {
		return s.active
	}
	return s.deck.ClampIndex(atoi(group) - 1)
}
