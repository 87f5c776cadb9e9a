package translation

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
)

// Provider defines the interface for remote translation services
type Provider interface {
	// Translate translates a single piece of text between the configured
	// language pair
	Translate(ctx context.Context, text string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for translation providers
type Config struct {
	Provider string // Provider name: "openai" or "gemini"
	Model    string // Model name; empty selects the provider default

	SourceLanguage language.Tag
	TargetLanguage language.Tag

	// Provider credentials
	OpenAIKey string
	GeminiKey string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:       "openai",
		SourceLanguage: language.Russian,
		TargetLanguage: language.English,
	}
}

// NewProvider creates the appropriate translation provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return newOpenAIProvider(config), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return newGeminiProvider(config), nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// PermanentError marks a provider failure that retrying cannot fix, such as
// a rejected API key or an unknown model. The retry loop gives up on these
// immediately instead of backing off.
type PermanentError struct {
	StatusCode int
	Err        error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent translation failure (status %d): %v", e.StatusCode, e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// permanentStatus reports whether an HTTP status from a provider indicates a
// failure that no retry will fix.
func permanentStatus(code int) bool {
	switch code {
	case 400, 401, 403, 404:
		return true
	}
	return false
}
