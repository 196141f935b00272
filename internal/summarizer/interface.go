package summarizer

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownEngine is returned by New for an unregistered engine name.
var ErrUnknownEngine = errors.New("unknown summarization engine")

// Engine wraps an external text summarization backend.
type Engine interface {
	Name() string
	Summarize(ctx context.Context, text string, budget Budget) (string, error)
}

// EngineError is an engine failure converted at the adapter boundary.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("summarizer %s: %v", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Summary is the result of summarizing one text. Source is the input
// snapshot. Err is non-nil when the engine failed; Text is then empty.
type Summary struct {
	Source string
	Text   string
	// Budget is the budget sent to the engine. It is zero when the input
	// was split; Chunks then holds the budget used for each chunk.
	Budget Budget
	Chunks []Budget
	Engine string
	Err    error
}

// Summarizer applies a LengthPolicy around an Engine.
type Summarizer interface {
	Summarize(ctx context.Context, text string) Summary
	// Batch summarizes independent texts with at most concurrency in
	// flight. Result i belongs to texts[i].
	Batch(ctx context.Context, texts []string, concurrency int) []Summary
	Policy() LengthPolicy
}
