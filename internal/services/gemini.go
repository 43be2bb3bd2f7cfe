package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// ErrGeminiNotConfigured reports that no API credential was provided. The
// service still constructs in this state; callers decide how to degrade.
var ErrGeminiNotConfigured = errors.New("gemini api key not configured")

// hrSystemRole is the fixed system instruction for every evaluation call.
const hrSystemRole = "You are an HR expert. You review job applications " +
	"objectively and explain your assessment of each candidate."

type GeminiService interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds the client. An empty apiKey is not an error:
// the service comes up unconfigured and every generation call fails with
// ErrGeminiNotConfigured.
func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	if apiKey == "" {
		return &geminiService{modelName: modelName}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

// Configured implements GeminiService.
func (g *geminiService) Configured() bool {
	return g.client != nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.client == nil {
		return "", ErrGeminiNotConfigured
	}

	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   4096,
		SystemInstruction: genai.NewContentFromText(hrSystemRole, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// No credential will not appear on retry
		if errors.Is(err, ErrGeminiNotConfigured) {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
