// Package editor is the interactive deck-editing TUI: a command prompt over
// the interpreter with a live preview of the slide being edited.
package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/interp"
	"github.com/avelinec/deckwright/internal/logger"
)

// Model contains the Bubbletea state for the deck editor.
type Model struct {
	session  *interp.Session
	input    textinput.Model
	message  string
	width    int
	quitting bool
}

// NewModel constructs the editor over a deck.
func NewModel(d deck.Deck, log *logger.Logger) Model {
	input := textinput.New()
	input.Placeholder = `try "change title to Ocean Basics" or "undo"`
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	return Model{
		session: interp.NewSession(d, log),
		input:   input,
		message: "Type a command, or ctrl+c to save and quit.",
	}
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Deck returns the deck in its current edited state.
func (m Model) Deck() deck.Deck {
	return m.session.Deck()
}

// Quitting reports whether the editor has been dismissed.
func (m Model) Quitting() bool {
	return m.quitting
}
