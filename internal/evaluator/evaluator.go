package evaluator

import (
	"context"
	"fmt"
	"math"
)

// Align returns how many positional pairs to score for lists of length a
// and b. Under MismatchTruncate it is min(a, b) and truncated reports
// whether anything was dropped.
func Align(a, b int, policy Mismatch) (pairs int, truncated bool, err error) {
	if a == b {
		return a, false, nil
	}
	if policy == MismatchError {
		return 0, false, fmt.Errorf("%w: %d summary sentences vs %d source sentences", ErrAlignmentMismatch, a, b)
	}
	return min(a, b), true, nil
}

func (e *implEvaluator) Evaluate(ctx context.Context, summary, source []string) (*Result, error) {
	n, truncated, err := Align(len(summary), len(source), e.mismatch)
	if err != nil {
		return nil, err
	}
	if truncated {
		e.logger.Warn(ctx, "Sentence counts differ (%d vs %d), scoring first %d pairs", len(summary), len(source), n)
	}

	res := &Result{
		Pairs:     n,
		Truncated: truncated,
		Scores:    make(map[string]Score),
		Scalars:   make(map[string]Scalar),
	}

	predTokens := make([][]string, n)
	refTokens := make([][]string, n)
	for i := range n {
		predTokens[i] = Tokenize(summary[i])
		refTokens[i] = Tokenize(source[i])
	}

	agg := NewAggregator(e.samples, e.seed)
	for _, m := range e.metrics {
		if m == MetricEmbedding || m == MetricMeteor {
			continue
		}
		perPair := make([]PRF, n)
		for i := range n {
			switch m {
			case MetricRouge1:
				perPair[i] = RougeN(refTokens[i], predTokens[i], 1)
			case MetricRouge2:
				perPair[i] = RougeN(refTokens[i], predTokens[i], 2)
			case MetricRougeL:
				perPair[i] = RougeL(refTokens[i], predTokens[i])
			}
		}
		res.Scores[m] = agg.Aggregate(perPair)
		e.logger.Debug(ctx, "%s: mid F1 %.4f, mean F1 %.4f over %d pairs", m, res.Scores[m].Mid.F1, res.Scores[m].MeanF1, n)
	}

	for _, m := range e.metrics {
		if m != MetricMeteor {
			continue
		}
		scores := make([]float64, n)
		for i := range n {
			scores[i] = Meteor(source[i], summary[i])
		}
		res.Scalars[m] = Scalar{Mean: mean(scores), Median: median(scores)}
	}

	for _, m := range e.metrics {
		if m != MetricEmbedding {
			continue
		}
		sc, err := e.embeddingScore(ctx, summary[:n], source[:n])
		if err != nil {
			return res, &MetricError{Metric: m, Err: err}
		}
		res.Scalars[m] = sc
	}

	return res, nil
}

func (e *implEvaluator) embeddingScore(ctx context.Context, summary, source []string) (Scalar, error) {
	if len(summary) == 0 {
		return Scalar{}, nil
	}

	texts := make([]string, 0, 2*len(summary))
	texts = append(texts, summary...)
	texts = append(texts, source...)

	vecs, err := e.embedder.Embed(ctx, e.embeddingModel, texts)
	if err != nil {
		return Scalar{}, err
	}
	if len(vecs) != len(texts) {
		return Scalar{}, fmt.Errorf("got %d embeddings for %d texts", len(vecs), len(texts))
	}

	n := len(summary)
	sims := make([]float64, n)
	for i := range n {
		sims[i] = Cosine(vecs[i], vecs[n+i])
	}
	return Scalar{Mean: mean(sims), Median: median(sims)}, nil
}

// Cosine returns the cosine similarity of a and b, or 0 if either is zero.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range min(len(a), len(b)) {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
