// Package ai wraps the Gemini API behind the advisor.Client interface.
package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// GeminiClient calls the Gemini API to generate advice text.
// Credentials come from the environment (GEMINI_API_KEY or Google Cloud
// application default credentials).
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed advisor client. A zero timeout
// leaves calls bounded only by the request context.
func NewGeminiClient(ctx context.Context, model string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// GenerateAdvice sends the prompt to the model and returns its text reply
func (c *GeminiClient) GenerateAdvice(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
