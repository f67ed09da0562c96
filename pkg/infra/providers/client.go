package providers

import (
	"context"
)

// Config carries the per-call provider settings. Decoding parameters are
// pinned by configuration so repeated analyses stay near-deterministic.
type Config struct {
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client invokes a text-generation endpoint and returns the raw generated
// text. Any failure mode (network, non-success status, missing generation
// structure) is returned as an error and treated upstream as Model-Unavailable.
type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
