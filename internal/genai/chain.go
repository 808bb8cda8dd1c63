package genai

import (
	"context"
	"strings"

	"github.com/avelinec/deckwright/internal/logger"
	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

// Chain tries an ordered list of backends sequentially. Sequential is part of
// the contract: a later backend must never race ahead of an earlier one's
// error report.
type Chain struct {
	backends []Backend
	log      *logger.Logger
}

// NewChain builds a chain over the given backends in priority order.
func NewChain(log *logger.Logger, backends ...Backend) *Chain {
	return &Chain{backends: backends, log: log}
}

// IDs returns the backend identifiers in chain order.
func (c *Chain) IDs() []string {
	ids := make([]string, len(c.backends))
	for i, b := range c.backends {
		ids[i] = b.ID()
	}
	return ids
}

// Complete runs the prompt against each backend in order and returns the first
// non-empty reply together with the identifier that produced it. When every
// backend fails, the error lists each identifier and its failure reason.
func (c *Chain) Complete(ctx context.Context, prompt string) (reply, backendID string, err error) {
	if len(c.backends) == 0 {
		return "", "", deckerrors.NewBackendUnavailableError(map[string]string{})
	}

	attempts := make(map[string]string, len(c.backends))
	for _, b := range c.backends {
		if ctx.Err() != nil {
			attempts[b.ID()] = ctx.Err().Error()
			break
		}

		text, callErr := b.Complete(ctx, prompt)
		if callErr != nil {
			attempts[b.ID()] = callErr.Error()
			c.log.WithFields(map[string]any{"backend": b.ID()}).Warn("backend failed, trying next")
			continue
		}
		if strings.TrimSpace(text) == "" {
			attempts[b.ID()] = "empty reply"
			c.log.WithFields(map[string]any{"backend": b.ID()}).Warn("backend returned empty reply, trying next")
			continue
		}

		return text, b.ID(), nil
	}

	return "", "", deckerrors.NewBackendUnavailableError(attempts)
}
