package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/genai"
	"github.com/avelinec/deckwright/internal/logger"
	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

// Options carries per-extraction parameters.
type Options struct {
	// FallbackTitle names the deck when the reply omits presentationTitle,
	// typically the uploaded file name.
	FallbackTitle string
	// DefaultTheme replaces an absent theme.
	DefaultTheme deck.Theme
}

// Pipeline turns raw generation replies into validated decks.
type Pipeline struct {
	chain *genai.Chain
	log   *logger.Logger
}

// New constructs a Pipeline. The chain is used only for the single repair
// round-trip; generation itself happens upstream.
func New(chain *genai.Chain, log *logger.Logger) *Pipeline {
	return &Pipeline{chain: chain, log: log}
}

// Deck extracts a schema-valid deck from a raw reply produced by backendID.
// On success the returned deck satisfies SlidesCount == len(Slides). On
// failure the error is one of the typed taxonomy values and preserves the raw
// text where applicable; an empty deck is never silently returned.
func (p *Pipeline) Deck(ctx context.Context, raw, backendID string, opts Options) (deck.Deck, error) {
	if strings.TrimSpace(raw) == "" {
		return deck.Deck{}, deckerrors.NewEmptyInputError(backendID)
	}

	candidate := Normalize(raw)
	if !json.Valid([]byte(candidate)) {
		repaired, err := p.repair(ctx, raw)
		if err != nil {
			return deck.Deck{}, err
		}
		candidate = Normalize(repaired)
		if !json.Valid([]byte(candidate)) {
			return deck.Deck{}, deckerrors.NewUnparsableError(backendID, raw, errInvalidJSON)
		}
	}

	return p.decode(candidate, raw, opts)
}

var errInvalidJSON = errors.New("not valid JSON after normalization")

// repair sends the offending text back through the fallback chain exactly
// once, asking for a corrected object.
func (p *Pipeline) repair(ctx context.Context, broken string) (string, error) {
	p.log.Warn("strict parse failed, attempting one repair round-trip")
	reply, backendID, err := p.chain.Complete(ctx, genai.BuildRepairPrompt(broken))
	if err != nil {
		return "", err
	}
	p.log.WithFields(map[string]any{"backend": backendID}).Debug("repair reply received")
	return reply, nil
}

func (p *Pipeline) decode(candidate, raw string, opts Options) (deck.Deck, error) {
	payload := unwrapEnvelope(candidate)

	// Probe slides presence separately: a deck without a slides list is a
	// hard failure, not an empty deck.
	var probe struct {
		Slides *[]json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return deck.Deck{}, deckerrors.NewUnparsableError("", raw, err)
	}
	if probe.Slides == nil {
		return deck.Deck{}, deckerrors.NewSchemaError("missing slides list", raw)
	}
	if len(*probe.Slides) == 0 {
		return deck.Deck{}, deckerrors.NewSchemaError("empty slides list", raw)
	}

	var d deck.Deck
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return deck.Deck{}, deckerrors.NewUnparsableError("", raw, err)
	}

	d.Normalize(opts.FallbackTitle, opts.DefaultTheme)

	// Cosmetic violations (odd colors, unknown layouts) degrade gracefully in
	// the compiler, so they are logged rather than fatal. Slides presence is
	// the only hard schema requirement.
	if err := deck.Validate(&d); err != nil {
		p.log.WithFields(map[string]any{"reason": err.Error()}).Warn("deck has schema violations, compiling with fallbacks")
	}

	return d, nil
}

// unwrapEnvelope accepts either the bare deck object or a {"deck": {...}}
// wrapper and returns the deck payload.
func unwrapEnvelope(candidate string) string {
	var envelope struct {
		Deck json.RawMessage `json:"deck"`
	}
	if err := json.Unmarshal([]byte(candidate), &envelope); err == nil && len(envelope.Deck) > 0 {
		trimmed := strings.TrimSpace(string(envelope.Deck))
		if strings.HasPrefix(trimmed, "{") {
			return trimmed
		}
	}
	return candidate
}
