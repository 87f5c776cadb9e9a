package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// openAIProvider implements Provider using the OpenAI chat completion API
type openAIProvider struct {
	client *openai.Client
	config *Config
}

func newOpenAIProvider(config *Config) *openAIProvider {
	return &openAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}
}

// Translate translates text using a chat completion request
func (p *openAIProvider) Translate(ctx context.Context, text string) (string, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: translationPrompt(p.config.SourceLanguage, p.config.TargetLanguage),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && permanentStatus(apiErr.HTTPStatusCode) {
			return "", &PermanentError{StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (p *openAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *openAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not found")
	}
	return nil
}

// translationPrompt builds the system prompt shared by all providers. The
// placeholder instruction keeps masked URLs intact across the remote call.
func translationPrompt(source, target language.Tag) string {
	from := display.English.Languages().Name(source)
	to := display.English.Languages().Name(target)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are a professional translator. Translate the user's text from %s to %s.\n", from, to))
	sb.WriteString("Respond with only the translation, nothing else.\n")
	sb.WriteString("Any token of the form URLTOKEN<number>X is a placeholder: copy each one to the output verbatim, unchanged and in its place.")
	return sb.String()
}
