package translator

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/gemini"
	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implTranslator struct {
	engine Engine
	logger logger.Logger
}

// New wraps engine in a line-by-line Translator.
func New(engine Engine, log logger.Logger) Translator {
	return &implTranslator{engine: engine, logger: log}
}

// NewEngine builds the Engine named by cfg.Translation.Engine.
func NewEngine(cfg *config.Config, gem gemini.Client, hf *huggingface.Client) (Engine, error) {
	switch cfg.Translation.Engine {
	case "huggingface", "":
		return NewHuggingFace(hf, cfg.HuggingFace.TranslationModel), nil
	case "gemini":
		if gem == nil {
			return nil, gemini.ErrNoKeys
		}
		return NewGemini(gem), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Translation.Engine)
	}
}
