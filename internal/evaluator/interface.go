package evaluator

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAlignmentMismatch is returned under MismatchError when the two
	// sentence lists differ in length.
	ErrAlignmentMismatch = errors.New("alignment length mismatch")
	// ErrUnknownMetric is returned by New for an unsupported metric name.
	ErrUnknownMetric = errors.New("unknown metric")
)

// Mismatch decides what happens when sentence counts differ.
type Mismatch string

const (
	MismatchTruncate Mismatch = "truncate"
	MismatchError    Mismatch = "error"
)

// Metric names.
const (
	MetricRouge1    = "rouge1"
	MetricRouge2    = "rouge2"
	MetricRougeL    = "rougeL"
	MetricEmbedding = "embedding"
	MetricMeteor    = "meteor"
)

// PRF is a precision / recall / F1 triple.
type PRF struct {
	Precision float64
	Recall    float64
	F1        float64
}

// Score aggregates one overlap metric across all pairs.
type Score struct {
	Low  PRF // 2.5th percentile of bootstrap means
	Mid  PRF // median of bootstrap means
	High PRF // 97.5th percentile of bootstrap means

	MeanF1   float64
	MedianF1 float64
}

// Scalar aggregates a single-valued metric across all pairs.
type Scalar struct {
	Mean   float64
	Median float64
}

// Result is the read-only outcome of Evaluate.
type Result struct {
	Pairs     int
	Truncated bool
	Scores    map[string]Score
	Scalars   map[string]Scalar
}

// MetricError is an external-service failure while computing one metric.
type MetricError struct {
	Metric string
	Err    error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric %s: %v", e.Metric, e.Err)
}

func (e *MetricError) Unwrap() error { return e.Err }

// Embedder returns one vector per text.
type Embedder interface {
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// Evaluator scores summary sentences against source sentences, pairing
// sentence i with sentence i.
type Evaluator interface {
	Evaluate(ctx context.Context, summary, source []string) (*Result, error)
}
