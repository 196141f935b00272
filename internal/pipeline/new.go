package pipeline

import (
	"errors"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/downloader"
	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/translator"
)

// Deps are the collaborators of a Pipeline. Downloader, Normalizer,
// Translator, Evaluator and Observer are optional.
type Deps struct {
	Downloader  downloader.Downloader
	Normalizer  audio.Normalizer
	Segmenter   audio.Segmenter
	Transcriber transcriber.Engine
	Summarizer  summarizer.Summarizer
	Translator  translator.Translator
	Evaluator   evaluator.Evaluator
	Observer    Observer
}

type implPipeline struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
}

// New creates a Pipeline.
func New(cfg *config.Config, deps Deps, log logger.Logger) (Pipeline, error) {
	if deps.Segmenter == nil {
		return nil, errors.New("pipeline requires a segmenter")
	}
	if deps.Transcriber == nil {
		return nil, errors.New("pipeline requires a transcription engine")
	}
	if deps.Summarizer == nil {
		return nil, errors.New("pipeline requires a summarizer")
	}
	if deps.Observer == nil {
		deps.Observer = ObserverFunc(func(Event) {})
	}
	return &implPipeline{
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}, nil
}
