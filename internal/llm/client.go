// Package llm wraps the Google GenAI SDK behind a small text-generation
// client used by the tag suggester and the pantry normalizer.
package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/larderhq/larder/pkg/errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Client sends prompts to the Gemini API and returns the response text.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the Gemini model ID.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a Gemini API client. The API key is required; there is
// no anonymous access to the generation endpoint.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.WrapAPI("gemini", 0, err)
	}

	c := &Client{client: gc, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured model ID.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the prompt and returns the raw response text. The request
// asks for a JSON response; callers still clean and parse it themselves
// since models occasionally wrap output in markdown fences anyway.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", errors.WrapAPI("gemini", 0, err)
	}

	text := resp.Text()
	if text == "" {
		return "", &errors.APIError{
			Service: "gemini",
			Message: "model returned an empty response",
		}
	}
	return text, nil
}

// CleanJSON strips the markdown code fences models sometimes wrap around
// JSON output, returning the bare payload.
func CleanJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```json")
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
