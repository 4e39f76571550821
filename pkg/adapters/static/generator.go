// Package static implements ports.TextGenerator with fixed templates. It is
// the offline stand-in for the Ollama adapter: same contract, zero latency,
// fully deterministic output for tests and air-gapped runs.
package static

import (
	"context"
	"fmt"

	"github.com/inevo/formflow/pkg/ports"
)

// Generator produces deterministic phrasings from the prompt inputs.
type Generator struct{}

// New creates a static Generator.
func New() *Generator {
	return &Generator{}
}

// Generate implements ports.TextGenerator.
func (g *Generator) Generate(_ context.Context, role ports.PromptRole, in ports.PromptInputs) (string, error) {
	switch role {
	case ports.PromptQuestion:
		if in.Description != "" && in.Description != in.Field {
			return fmt.Sprintf("Please provide your %s (%s).", in.Field, in.Description), nil
		}
		return fmt.Sprintf("Please provide your %s.", in.Field), nil

	case ports.PromptReflection:
		return fmt.Sprintf("That doesn't look right: %s Could you try again?", in.Error), nil

	case ports.PromptPlanning:
		return fmt.Sprintf("Great, %s is done. Next up: %s.", in.PrevSection, in.NextSection), nil
	}
	return "", fmt.Errorf("unknown prompt role %q", role)
}
