package interp

import "github.com/avelinec/deckwright/internal/deck"

// HistoryLimit bounds how many undo steps a session retains. The oldest
// snapshot is dropped once the limit is reached.
const HistoryLimit = 25

// history is a bounded stack of deck snapshots, push-before-mutate.
type history struct {
	snaps []deck.Deck
}

func (h *history) push(d deck.Deck) {
	h.snaps = append(h.snaps, d.Clone())
	if len(h.snaps) > HistoryLimit {
		h.snaps = h.snaps[1:]
	}
}

func (h *history) pop() (deck.Deck, bool) {
	if len(h.snaps) == 0 {
		return deck.Deck{}, false
	}
	top := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	return top, true
}

func (h *history) depth() int {
	return len(h.snaps)
}
