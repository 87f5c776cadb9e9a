// Package models provides functionality for listing the OpenAI chat
// models usable for translation. It helps users discover which models
// are available with their API key.
package models
