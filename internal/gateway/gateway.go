// Package gateway is the single boundary to the external generation
// service: one request in, generated text or a GatewayError out. No
// retries, no streaming.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultModel identifies the generation model.
	DefaultModel = "o3-mini"
	// DefaultMaxTokens bounds the generated output size.
	DefaultMaxTokens = 15000

	systemPrompt = "You are a helpful culinary assistant."
)

// GatewayError wraps any transport, authentication, or service-side
// failure from the generation service. It is terminal for the request that
// produced it; the caller may retry manually.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Gateway issues meal-plan generation requests against an LLM client.
type Gateway struct {
	client    llms.Model
	model     string
	maxTokens int
}

// New creates a Gateway backed by the OpenAI API using the resolved
// credentials. Callers must not reach this point without credentials.
func New(apiKey, model string, maxTokens int) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return NewWithClient(client, model, maxTokens), nil
}

// NewWithClient creates a Gateway around an existing LLM client. Zero
// values for model and maxTokens fall back to the defaults.
func NewWithClient(client llms.Model, model string, maxTokens int) *Gateway {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Gateway{client: client, model: model, maxTokens: maxTokens}
}

// Generate sends the built prompt with the fixed system instruction and
// returns the generated text. Any failure comes back as a *GatewayError;
// nothing panics or escapes past this boundary.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := g.client.GenerateContent(ctx, messages,
		llms.WithModel(g.model),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	if response == nil || len(response.Choices) == 0 {
		return "", &GatewayError{Err: fmt.Errorf("empty response from generation service")}
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
