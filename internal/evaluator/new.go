package evaluator

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implEvaluator struct {
	metrics        []string
	mismatch       Mismatch
	samples        int
	seed           int64
	embedder       Embedder
	embeddingModel string
	logger         logger.Logger
}

// New creates an Evaluator. embedder is required only for the embedding metric.
func New(cfg config.EvaluationConfig, embedder Embedder, log logger.Logger) (Evaluator, error) {
	for _, m := range cfg.Metrics {
		switch m {
		case MetricRouge1, MetricRouge2, MetricRougeL, MetricMeteor:
		case MetricEmbedding:
			if embedder == nil {
				return nil, fmt.Errorf("metric %s requires an embedder", m)
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
		}
	}

	mismatch := Mismatch(cfg.Mismatch)
	switch mismatch {
	case "":
		mismatch = MismatchTruncate
	case MismatchTruncate, MismatchError:
	default:
		return nil, fmt.Errorf("unknown mismatch policy %q", cfg.Mismatch)
	}

	samples := cfg.BootstrapSamples
	if samples <= 0 {
		samples = 1000
	}

	return &implEvaluator{
		metrics:        cfg.Metrics,
		mismatch:       mismatch,
		samples:        samples,
		seed:           cfg.Seed,
		embedder:       embedder,
		embeddingModel: cfg.EmbeddingModel,
		logger:         log,
	}, nil
}
