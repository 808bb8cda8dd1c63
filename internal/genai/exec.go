package genai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecBackend runs an external program per completion: the prompt goes to the
// program's stdin and its stdout is the reply. This keeps the actual model
// transport outside the process; any CLI that reads stdin and prints a reply
// can serve as a backend.
type ExecBackend struct {
	id   string
	argv []string
}

// NewExecBackend builds a backend from its descriptor. A descriptor without a
// command yields a backend whose completions always fail with a configuration
// error, so the chain can report it and move on.
func NewExecBackend(d Descriptor) *ExecBackend {
	argv := make([]string, len(d.Command))
	for i, arg := range d.Command {
		argv[i] = strings.ReplaceAll(arg, "{model}", d.Model)
	}
	return &ExecBackend{id: d.ID, argv: argv}
}

func (b *ExecBackend) ID() string { return b.id }

func (b *ExecBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if len(b.argv) == 0 {
		return "", fmt.Errorf("backend %s has no command configured", b.id)
	}

	cmd := exec.CommandContext(ctx, b.argv[0], b.argv[1:]...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("backend %s: %w: %s", b.id, err, msg)
		}
		return "", fmt.Errorf("backend %s: %w", b.id, err)
	}

	return stdout.String(), nil
}

// BackendsFor materializes the configured descriptor list into chain-ready
// backends, preserving order.
func BackendsFor(descriptors []Descriptor) []Backend {
	out := make([]Backend, len(descriptors))
	for i, d := range descriptors {
		out[i] = NewExecBackend(d)
	}
	return out
}
