// Package testutil provides shared test doubles and fixture helpers.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockProvider is a scriptable translation provider for tests. By default it
// "translates" by upper-casing the input while leaving URLTOKEN placeholders
// untouched, which makes translated output easy to distinguish from source
// text in assertions.
type MockProvider struct {
	mu sync.Mutex

	// Responses maps input text to a canned translation.
	Responses map[string]string

	// FailCalls makes the first n calls fail with Err before succeeding.
	FailCalls int

	// Err is returned while failing; nil selects a generic error.
	Err error

	// Calls records every input the provider was asked to translate.
	Calls []string
}

// Translate returns the scripted response for text, or an upper-cased echo.
func (m *MockProvider) Translate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)

	if m.FailCalls > 0 {
		m.FailCalls--
		if m.Err != nil {
			return "", m.Err
		}
		return "", fmt.Errorf("mock translation failure")
	}

	if m.Responses != nil {
		if resp, ok := m.Responses[text]; ok {
			return resp, nil
		}
	}

	return mockTranslate(text), nil
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable always reports the mock as ready
func (m *MockProvider) IsAvailable() error {
	return nil
}

// CallCount returns how many times Translate was invoked.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// mockTranslate upper-cases every word except placeholder tokens.
func mockTranslate(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if strings.HasPrefix(w, "URLTOKEN") {
			continue
		}
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, " ")
}
