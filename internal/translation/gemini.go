package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiProvider implements Provider using the Google Gemini API
type geminiProvider struct {
	config *Config
	client *genai.Client
}

func newGeminiProvider(config *Config) *geminiProvider {
	return &geminiProvider{config: config}
}

// Translate translates text using a Gemini generate-content request
func (p *geminiProvider) Translate(ctx context.Context, text string) (string, error) {
	client, err := p.geminiClient(ctx)
	if err != nil {
		return "", err
	}

	model := p.config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(
			translationPrompt(p.config.SourceLanguage, p.config.TargetLanguage), genai.RoleUser),
		Temperature: genai.Ptr[float32](0.3),
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(text), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && permanentStatus(apiErr.Code) {
			return "", &PermanentError{StatusCode: apiErr.Code, Err: err}
		}
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return translated, nil
}

// Name returns the provider name
func (p *geminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is properly configured
func (p *geminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not found")
	}
	return nil
}

// geminiClient creates the API client on first use so that constructing the
// provider never needs a context or network access.
func (p *geminiProvider) geminiClient(ctx context.Context) (*genai.Client, error) {
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	p.client = client
	return client, nil
}
