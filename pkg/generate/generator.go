// Package generate produces review form schemas by prompting a language-model
// chat-completion service and validating its reply against the form contract.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

var (
	// ErrMissingAPIKey indicates no credential was supplied for the upstream
	// service. Schema generation cannot proceed without one.
	ErrMissingAPIKey = errors.New("generate: API key is not set")
	// ErrEmptyResponse indicates the upstream call succeeded but returned no
	// message content.
	ErrEmptyResponse = errors.New("generate: no content received from model")
)

// CredentialChecker is implemented by clients that can report whether they
// hold a usable credential before any network call is made.
type CredentialChecker interface {
	HasCredential() bool
}

// Generator turns a free-text product type into a validated FormStructure
// with a single upstream call. No retries: a failed call surfaces directly to
// the caller.
type Generator struct {
	client ChatClient
	model  string
	logger *zap.Logger
}

// GeneratorOption customises a Generator.
type GeneratorOption func(*Generator)

// WithModel overrides the chat model identifier.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New constructs a Generator around a chat client.
func New(client ChatClient, options ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		model:  DefaultModel,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate requests a review form schema for the product type, parses the
// JSON reply, and re-validates it structurally. Failure modes, in order:
// missing credential, upstream call failure, empty content, JSON parse
// failure, and contract violation (*schema.ValidationError).
func (g *Generator) Generate(ctx context.Context, productType string) (schema.FormStructure, error) {
	if g.client == nil {
		return schema.FormStructure{}, errors.New("generate: chat client is nil")
	}
	if checker, ok := g.client.(CredentialChecker); ok && !checker.HasCredential() {
		return schema.FormStructure{}, ErrMissingAPIKey
	}

	req := ChatRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(productType)},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		g.logger.Error("chat completion failed",
			zap.String("product_type", productType),
			zap.Error(err))
		return schema.FormStructure{}, fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return schema.FormStructure{}, ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content

	var structure schema.FormStructure
	if err := json.Unmarshal([]byte(content), &structure); err != nil {
		g.logger.Warn("model returned unparsable JSON",
			zap.String("product_type", productType),
			zap.Error(err))
		return schema.FormStructure{}, fmt.Errorf("generate: parse model response as JSON: %w", err)
	}

	if err := structure.Validate(); err != nil {
		g.logger.Warn("model returned invalid form structure",
			zap.String("product_type", productType),
			zap.Error(err))
		return schema.FormStructure{}, err
	}

	g.logger.Info("generated form structure",
		zap.String("product_type", productType),
		zap.String("title", structure.Title),
		zap.Int("fields", len(structure.Fields)))
	return structure, nil
}
