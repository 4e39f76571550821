// Package ollama implements ports.TextGenerator against a local Ollama
// runtime. The workflow treats generation as best-effort: any failure here
// makes the core fall back to its deterministic phrasings.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/inevo/formflow/pkg/ports"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is a small model picked for latency over eloquence.
const DefaultModel = "llama3.2"

// Generator wraps the Ollama API client to implement ports.TextGenerator.
type Generator struct {
	client      *api.Client
	model       string
	temperature float64
}

// Option configures the Generator.
type Option func(*Generator)

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// New creates a Generator talking to the Ollama server at baseURL (empty
// means the default local endpoint).
func New(baseURL string, opts ...Option) *Generator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		parsed, _ = url.Parse(DefaultBaseURL)
	}

	g := &Generator{
		client:      api.NewClient(parsed, http.DefaultClient),
		model:       DefaultModel,
		temperature: 0.1, // low temp for precision
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements ports.TextGenerator.
func (g *Generator) Generate(ctx context.Context, role ports.PromptRole, in ports.PromptInputs) (string, error) {
	system, user, err := buildPrompt(role, in)
	if err != nil {
		return "", err
	}

	stream := false
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": g.temperature,
		},
	}

	var response api.ChatResponse
	if err := g.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	return strings.TrimSpace(response.Message.Content), nil
}

// buildPrompt fills the per-role prompt templates.
func buildPrompt(role ports.PromptRole, in ports.PromptInputs) (system, user string, err error) {
	switch role {
	case ports.PromptQuestion:
		description := in.Description
		if description == "" {
			description = "N/A"
		}
		return "You are a helpful insurance assistant. Your goal is to politely and clearly ask the user for a specific piece of information. Be concise. Use the field instructions provided to guide your question.",
			fmt.Sprintf("Please ask the user for their '%s'. Field Instructions: %s. The current phase is '%s'. Keep it professional but conversational. Do not ask multiple questions. Do not repeat the raw field name, instead paraphrase it naturally.",
				in.Field, description, in.Phase),
			nil

	case ports.PromptReflection:
		return "You are an empathetic, intelligent insurance agent. The user provided invalid input for a form field. Your goal is to acknowledge their input, explain gently why it doesn't fit the requirement, and suggest how to fix it or offer a valid alternative format. Be helpful, not robotic.",
			fmt.Sprintf("Field: %s\nUser Input: '%s'\nSystem Error: %s\n\nPlease generate a natural language response to correct the user/guide them.",
				in.Field, in.RawInput, in.Error),
			nil

	case ports.PromptPlanning:
		return "You are a professional insurance strategist. You are moving the user from one section of the application to another. Briefly explain what we just finished and what we are moving to next, so the user has a sense of progress.",
			fmt.Sprintf("Finished Section: %s\nNext Section: %s\n\nGenerate a 1-sentence transition message.",
				in.PrevSection, in.NextSection),
			nil
	}
	return "", "", fmt.Errorf("unknown prompt role %q", role)
}
