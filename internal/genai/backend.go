// Package genai defines the contract between the deck pipeline and the text
// generation service. Transport is a collaborator concern: callers supply
// Backend implementations, this package only sequences them.
package genai

import "context"

// Backend is a single text-generation model endpoint.
type Backend interface {
	// ID returns the stable identifier used in fallback reporting.
	ID() string

	// Complete sends a prompt and returns the raw reply text. Callers are
	// expected to bound the call with a context deadline; expiry counts as
	// this backend failing.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Descriptor names a backend in configuration. The ordered descriptor list is
// the fallback chain; order is behavior, not preference. Command is the
// external program that speaks to the model: prompt on stdin, reply on
// stdout, with "{model}" in an argument replaced by the model name.
type Descriptor struct {
	ID      string   `yaml:"id" validate:"required,backend_id"`
	Model   string   `yaml:"model" validate:"required"`
	Command []string `yaml:"command"`
}
