package genai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecBackendRunsCommand(t *testing.T) {
	t.Parallel()

	b := NewExecBackend(Descriptor{ID: "cat", Model: "unused", Command: []string{"cat"}})
	reply, err := b.Complete(context.Background(), "echo this back")
	require.NoError(t, err)
	require.Equal(t, "echo this back", reply)
}

func TestExecBackendSubstitutesModel(t *testing.T) {
	t.Parallel()

	b := NewExecBackend(Descriptor{
		ID:      "echoer",
		Model:   "claude-3-5-sonnet-20240620",
		Command: []string{"echo", "-n", "{model}"},
	})
	reply, err := b.Complete(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "claude-3-5-sonnet-20240620", reply)
}

func TestExecBackendWithoutCommandFails(t *testing.T) {
	t.Parallel()

	b := NewExecBackend(Descriptor{ID: "bare", Model: "m"})
	_, err := b.Complete(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no command configured")
}

func TestExecBackendReportsStderr(t *testing.T) {
	t.Parallel()

	b := NewExecBackend(Descriptor{
		ID:      "failing",
		Model:   "m",
		Command: []string{"sh", "-c", "echo boom >&2; exit 3"},
	})
	_, err := b.Complete(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestBackendsForPreservesOrder(t *testing.T) {
	t.Parallel()

	backends := BackendsFor([]Descriptor{
		{ID: "first", Model: "a"},
		{ID: "second", Model: "b"},
	})
	require.Len(t, backends, 2)
	require.Equal(t, "first", backends[0].ID())
	require.Equal(t, "second", backends[1].ID())
}
