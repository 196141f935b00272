package evaluator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestTokenize(t *testing.T) {
	got := Tokenize("The Rates were RAISED, twice! (in 2023)")
	want := []string{"the", "rate", "were", "rais", "twice", "in", "2023"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestRouge(t *testing.T) {
	ref := []string{"the", "cat", "sat", "on", "the", "mat"}
	pred := []string{"the", "cat", "lay", "on", "the", "mat"}

	tests := []struct {
		name string
		got  PRF
		want PRF
	}{
		{"rouge1", RougeN(ref, pred, 1), PRF{5.0 / 6, 5.0 / 6, 5.0 / 6}},
		{"rouge2", RougeN(ref, pred, 2), PRF{3.0 / 5, 3.0 / 5, 3.0 / 5}},
		{"rougeL", RougeL(ref, pred), PRF{5.0 / 6, 5.0 / 6, 5.0 / 6}},
		{"empty prediction", RougeN(ref, nil, 1), PRF{}},
		{"asymmetric", RougeN([]string{"a", "b", "c", "d"}, []string{"a", "b"}, 1), PRF{1, 0.5, 2.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, approx); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregatorConstantScores(t *testing.T) {
	scores := []PRF{{0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}}
	got := NewAggregator(200, 1).Aggregate(scores)

	want := Score{
		Low:      PRF{0.5, 0.5, 0.5},
		Mid:      PRF{0.5, 0.5, 0.5},
		High:     PRF{0.5, 0.5, 0.5},
		MeanF1:   0.5,
		MedianF1: 0.5,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorSkewed(t *testing.T) {
	scores := []PRF{{F1: 0}, {F1: 0}, {F1: 0}, {F1: 0.1}, {F1: 0.9}}
	got := NewAggregator(1000, 42).Aggregate(scores)

	if math.Abs(got.MeanF1-0.2) > 1e-9 {
		t.Errorf("MeanF1 = %v, want 0.2", got.MeanF1)
	}
	if got.MedianF1 != 0 {
		t.Errorf("MedianF1 = %v, want 0", got.MedianF1)
	}
	if !(got.Low.F1 <= got.Mid.F1 && got.Mid.F1 <= got.High.F1) {
		t.Errorf("low/mid/high not ordered: %v %v %v", got.Low.F1, got.Mid.F1, got.High.F1)
	}

	again := NewAggregator(1000, 42).Aggregate(scores)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("same seed gave different results:\n%s", diff)
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		a, b      int
		policy    Mismatch
		pairs     int
		truncated bool
		wantErr   error
	}{
		{3, 3, MismatchTruncate, 3, false, nil},
		{3, 3, MismatchError, 3, false, nil},
		{2, 5, MismatchTruncate, 2, true, nil},
		{5, 2, MismatchTruncate, 2, true, nil},
		{2, 5, MismatchError, 0, false, ErrAlignmentMismatch},
		{0, 4, MismatchTruncate, 0, true, nil},
	}
	for _, tt := range tests {
		pairs, truncated, err := Align(tt.a, tt.b, tt.policy)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Align(%d, %d, %s) error = %v, want %v", tt.a, tt.b, tt.policy, err, tt.wantErr)
		}
		if pairs != tt.pairs || truncated != tt.truncated {
			t.Errorf("Align(%d, %d, %s) = %d, %v; want %d, %v", tt.a, tt.b, tt.policy, pairs, truncated, tt.pairs, tt.truncated)
		}
	}
}

func newTestEvaluator(t *testing.T, mismatch string, emb Embedder, metrics ...string) Evaluator {
	t.Helper()
	cfg := config.EvaluationConfig{Metrics: metrics, Mismatch: mismatch, BootstrapSamples: 100, Seed: 7, EmbeddingModel: "m"}
	e, err := New(cfg, emb, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestEvaluateEqualLengths(t *testing.T) {
	e := newTestEvaluator(t, "truncate", nil, MetricRouge1, MetricRouge2, MetricRougeL)
	summary := []string{"The cat sat.", "Rates rose.", "Markets fell."}
	source := []string{"The cat sat on the mat.", "Interest rates rose again.", "Markets fell sharply."}

	res, err := e.Evaluate(context.Background(), summary, source)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Pairs != 3 || res.Truncated {
		t.Errorf("Pairs/Truncated = %d/%v, want 3/false", res.Pairs, res.Truncated)
	}
	for _, m := range []string{MetricRouge1, MetricRouge2, MetricRougeL} {
		sc, ok := res.Scores[m]
		if !ok {
			t.Fatalf("missing %s", m)
		}
		if sc.Mid.Precision != 1 && m != MetricRouge2 {
			t.Errorf("%s precision = %v, want 1 (summary tokens all in source)", m, sc.Mid.Precision)
		}
		if sc.Mid.F1 <= 0 || sc.Mid.F1 > 1 {
			t.Errorf("%s mid F1 = %v", m, sc.Mid.F1)
		}
	}
}

func TestEvaluateMismatch(t *testing.T) {
	summary := []string{"a b c", "d e f"}
	source := []string{"a b c", "d e f", "g h i"}

	res, err := newTestEvaluator(t, "truncate", nil, MetricRouge1).Evaluate(context.Background(), summary, source)
	if err != nil {
		t.Fatalf("truncate: Evaluate() error = %v", err)
	}
	if res.Pairs != 2 || !res.Truncated {
		t.Errorf("truncate: Pairs/Truncated = %d/%v, want 2/true", res.Pairs, res.Truncated)
	}

	_, err = newTestEvaluator(t, "error", nil, MetricRouge1).Evaluate(context.Background(), summary, source)
	if !errors.Is(err, ErrAlignmentMismatch) {
		t.Errorf("error policy: Evaluate() error = %v, want ErrAlignmentMismatch", err)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	res, err := newTestEvaluator(t, "truncate", nil, MetricRouge1).Evaluate(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Pairs != 0 || res.Scores[MetricRouge1] != (Score{}) {
		t.Errorf("empty result = %+v", res)
	}
}

type fakeEmbedder struct {
	vecs [][]float32
	err  error
}

func (f *fakeEmbedder) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	return f.vecs, f.err
}

func TestEvaluateEmbedding(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float32{
		{1, 0}, {0, 1}, // summary
		{1, 0}, {1, 0}, // source
	}}
	e := newTestEvaluator(t, "truncate", emb, MetricEmbedding)

	res, err := e.Evaluate(context.Background(), []string{"x", "y"}, []string{"x", "z"})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	want := Scalar{Mean: 0.5, Median: 0.5}
	if diff := cmp.Diff(want, res.Scalars[MetricEmbedding], approx); diff != "" {
		t.Errorf("embedding mismatch (-want +got):\n%s", diff)
	}

	emb.err = errors.New("quota")
	var metricErr *MetricError
	if _, err := e.Evaluate(context.Background(), []string{"x"}, []string{"x"}); !errors.As(err, &metricErr) {
		t.Errorf("Evaluate() error = %v, want MetricError", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(config.EvaluationConfig{Metrics: []string{"bleu"}}, nil, logger.Nop()); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("New(bleu) error = %v, want ErrUnknownMetric", err)
	}
	if _, err := New(config.EvaluationConfig{Metrics: []string{MetricEmbedding}}, nil, logger.Nop()); err == nil {
		t.Error("New(embedding) without embedder should fail")
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float32{1, 2}, []float32{2, 4}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine(parallel) = %v", got)
	}
	if got := Cosine([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("Cosine(zero) = %v", got)
	}
}

func TestMeteor(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		prediction string
		want       float64
	}{
		{"identical", "the cat sat on the mat", "The cat sat on the mat.", 1 - 0.5/216},
		{"stem match", "the cat ran", "the cats ran", 1 - 0.5/27},
		{"two chunks", "a b c d", "c d a b", 0.9375},
		{"partial", "the cat sat on the mat", "the dog sat", 10.0 / 57},
		{"no overlap", "rates rose", "markets fell", 0},
		{"empty prediction", "rates rose", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Meteor(tt.reference, tt.prediction); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Meteor(%q, %q) = %v, want %v", tt.reference, tt.prediction, got, tt.want)
			}
		})
	}
}

func TestEvaluateMeteor(t *testing.T) {
	e := newTestEvaluator(t, "truncate", nil, MetricRouge1, MetricMeteor)
	summary := []string{"the cat sat on the mat", "the dog sat"}
	source := []string{"the cat sat on the mat", "the cat sat on the mat"}

	res, err := e.Evaluate(context.Background(), summary, source)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if _, ok := res.Scores[MetricMeteor]; ok {
		t.Error("meteor should be reported as a scalar")
	}
	want := (1 - 0.5/216 + 10.0/57) / 2
	if got := res.Scalars[MetricMeteor].Mean; math.Abs(got-want) > 1e-9 {
		t.Errorf("meteor mean = %v, want %v", got, want)
	}
	if _, ok := res.Scores[MetricRouge1]; !ok {
		t.Error("rouge1 missing next to meteor")
	}
}
