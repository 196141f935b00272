package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/gemini"
	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implSummarizer struct {
	engine     Engine
	policy     LengthPolicy
	chunkChars int
	logger     logger.Logger
}

// New creates a Summarizer from the summarization config.
func New(cfg config.SummarizationConfig, engine Engine, log logger.Logger) (Summarizer, error) {
	policy := LengthPolicy{
		MaxScale:   cfg.MaxScale,
		MinScale:   cfg.MinScale,
		MaxFloor:   cfg.MaxFloor,
		MaxCeiling: cfg.MaxCeiling,
		MinFloor:   cfg.MinFloor,
		MinCeiling: cfg.MinCeiling,
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &implSummarizer{
		engine:     engine,
		policy:     policy,
		chunkChars: cfg.ChunkChars,
		logger:     log,
	}, nil
}

// NewEngine builds the Engine named by cfg.Summarization.Engine. gem may be
// nil unless the gemini engine is selected.
func NewEngine(cfg *config.Config, gem gemini.Client, hf *huggingface.Client) (Engine, error) {
	switch cfg.Summarization.Engine {
	case "huggingface", "":
		return NewHuggingFace(hf, cfg.Summarization.Model), nil
	case "gemini":
		if gem == nil {
			return nil, gemini.ErrNoKeys
		}
		return NewGemini(gem), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Summarization.Engine)
	}
}
