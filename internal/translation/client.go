package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultMaxRetries is how many times a failed remote call is retried
	// before the client gives up on the sentence.
	DefaultMaxRetries = 5

	// DefaultBaseDelay is the backoff unit: retry n waits baseDelay * 2^(n-1).
	DefaultBaseDelay = 500 * time.Millisecond

	// breakerFailureThreshold is the number of consecutive remote failures
	// after which the circuit opens and attempts stop reaching the service
	// until the cool-down expires.
	breakerFailureThreshold = 12

	// breakerCooldown is how long the circuit stays open before probing the
	// service again.
	breakerCooldown = 30 * time.Second
)

// Client wraps a Provider with bounded exponential-backoff retry and a
// circuit breaker. A sentence whose retries are exhausted degrades to its
// untranslated original rather than failing the article: availability of
// output wins over completeness.
type Client struct {
	provider   Provider
	maxRetries int
	baseDelay  time.Duration
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a retrying translation client around provider.
// maxRetries < 0 and baseDelay <= 0 select the defaults.
func NewClient(provider Provider, maxRetries int, baseDelay time.Duration) *Client {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    provider.Name(),
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
	})

	return &Client{
		provider:   provider,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		breaker:    breaker,
	}
}

// Translate translates one piece of text. It issues at most maxRetries+1
// remote calls. When every attempt fails with a transient error the input is
// returned unchanged with a nil error. Permanent provider failures and
// context cancellation are returned immediately.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	for attempt := 1; ; attempt++ {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.provider.Translate(ctx, text)
		})
		if err == nil {
			return result.(string), nil
		}

		var perm *PermanentError
		if errors.As(err, &perm) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if attempt > c.maxRetries {
			// Give up, keep the original
			return text, nil
		}

		if err := c.sleep(ctx, c.baseDelay<<(attempt-1)); err != nil {
			return "", err
		}
	}
}

// sleep waits for the backoff delay, ending early if ctx is cancelled.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
