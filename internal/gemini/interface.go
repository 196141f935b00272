package gemini

import (
	"context"
	"errors"
)

// ErrNoKeys is returned by New when no API key is configured.
var ErrNoKeys = errors.New("no gemini api keys configured")

// Client calls Gemini with API key rotation.
type Client interface {
	// Generate sends prompt to the text model and returns the joined text parts.
	Generate(ctx context.Context, prompt string) (string, error)
	// Embed returns one embedding vector per input text.
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}
