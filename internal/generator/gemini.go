// Package generator derives a scored-profile HTML email body from normalized
// form answers by prompting an external generative model.
package generator

import (
	"context"
	"fmt"
	"strings"

	"formscore_backend/platform/logger"

	"google.golang.org/genai"
)

// FallbackMessage is used as the email body whenever the model call fails.
const FallbackMessage = "Thank you for your submission. We received your responses and will get back to you soon."

// Result is the tagged outcome of a generation attempt. Fallback is true when
// the model call failed and HTML carries the fixed thank-you sentence instead
// of generated content.
type Result struct {
	HTML     string
	Fallback bool
}

// ContentGenerator produces an email body for a set of normalized answers.
type ContentGenerator interface {
	Generate(ctx context.Context, answers map[string]interface{}) Result
}

// Gemini generates content through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, log *logger.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, log: log}, nil
}

// Generate builds the scoring prompt and asks the model for the HTML body.
// Failures never propagate: the caller always gets a usable body.
func (g *Gemini) Generate(ctx context.Context, answers map[string]interface{}) Result {
	prompt := BuildPrompt(answers)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.log.ExternalCallFailed("gemini", err)
		return Result{HTML: FallbackMessage, Fallback: true}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.log.Warn("gemini returned empty content, using fallback")
		return Result{HTML: FallbackMessage, Fallback: true}
	}

	return Result{HTML: text}
}
