// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fintrackhq/fintrack/internal/common"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Client suggests transaction categories from descriptions.
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SuggestCategory asks the model to pick the best-fitting category for a
// transaction description from the given candidates. The reply is matched
// against candidates case-insensitively; an unmatched reply is returned
// as-is (category is free text).
func (c *Client) SuggestCategory(ctx context.Context, description string, candidates []string) (string, error) {
	prompt := fmt.Sprintf(
		"Pick the single best spending category for this transaction description: %q.\n"+
			"Prefer one of: %s.\n"+
			"Reply with the category name only, nothing else.",
		description, strings.Join(candidates, ", "))

	c.logger.Debug().Str("model", c.model).Msg("Requesting category suggestion")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", fmt.Errorf("empty model response")
	}

	for _, cand := range candidates {
		if strings.EqualFold(cand, reply) {
			return cand, nil
		}
	}
	return reply, nil
}
