// Package translation provides access to remote translation services with
// a fixed source/target language pair per client. It includes OpenAI and
// Gemini backed providers behind a common interface, plus a retrying client
// with exponential backoff and a circuit breaker tuned for flaky,
// best-effort endpoints.
package translation
