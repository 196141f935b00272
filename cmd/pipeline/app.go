package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/downloader"
	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/gemini"
	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/output"
	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/translator"
	"github.com/nguyentantai21042004/audio-digest/internal/watcher"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

type app struct {
	cfg        *config.Config
	logger     logger.Logger
	engine     transcriber.Engine
	summarizer summarizer.Summarizer
	pipeline   pipeline.Pipeline
	writer     output.Writer
	embedder   evaluator.Embedder
	closeOnce  sync.Once

	includeExisting bool
	refCol, genCol  string
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	exec := executor.New()

	// Gemini is optional; only engines selecting it require keys.
	gem, err := gemini.New(cfg.Gemini, log)
	if err != nil && !errors.Is(err, gemini.ErrNoKeys) {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	hf := huggingface.New(cfg.HuggingFace.BaseURL, cfg.HuggingFace.Token, cfg.HuggingFace.Timeout)

	engine, err := transcriber.New(cfg, exec, log)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	sumEngine, err := summarizer.NewEngine(cfg, gem, hf)
	if err != nil {
		return nil, fmt.Errorf("create summarization engine: %w", err)
	}
	sum, err := summarizer.New(cfg.Summarization, sumEngine, log)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	deps := pipeline.Deps{
		Downloader:  downloader.New(cfg.Download, exec, log),
		Normalizer:  audio.NewNormalizer(cfg.FFmpeg, exec, log),
		Segmenter:   audio.NewSegmenter(cfg.Segmentation, log),
		Transcriber: engine,
		Summarizer:  sum,
		Observer:    progress.New(os.Stderr),
	}

	if cfg.Translation.Enabled {
		trEngine, err := translator.NewEngine(cfg, gem, hf)
		if err != nil {
			return nil, fmt.Errorf("create translation engine: %w", err)
		}
		deps.Translator = translator.New(trEngine, log)
	}

	var embedder evaluator.Embedder
	if gem != nil {
		embedder = gem
	}
	if cfg.Evaluation.Enabled {
		ev, err := evaluator.New(cfg.Evaluation, embedder, log)
		if err != nil {
			return nil, fmt.Errorf("create evaluator: %w", err)
		}
		deps.Evaluator = ev
	}

	pipe, err := pipeline.New(cfg, deps, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logger:     log,
		engine:     engine,
		summarizer: sum,
		pipeline:   pipe,
		writer:     output.New(cfg.Paths.Output, log),
		embedder:   embedder,
	}, nil
}

func (a *app) close(ctx context.Context) {
	a.closeOnce.Do(func() {
		if err := a.engine.Close(); err != nil {
			a.logger.Warn(ctx, "Failed to close transcriber: %v", err)
		}
	})
}

func (a *app) request(input string) pipeline.Request {
	return pipeline.Request{
		Input:     input,
		Translate: a.cfg.Translation.Enabled,
		Evaluate:  a.cfg.Evaluation.Enabled,
	}
}

// run processes inputs sequentially on a background worker while the
// progress display renders in the foreground.
func (a *app) run(ctx context.Context, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("run: no inputs given")
	}

	var failed int
	for _, input := range inputs {
		res := <-a.pipeline.RunAsync(ctx, a.request(input))
		if err := a.report(ctx, res); err != nil {
			failed++
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func (a *app) batch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("batch: expected one directory or URL list")
	}

	inputs, err := collectInputs(args[0])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		a.logger.Warn(ctx, "No inputs found in %s", args[0])
		return nil
	}
	return a.processAll(ctx, inputs)
}

func (a *app) processAll(ctx context.Context, inputs []string) error {
	reqs := make([]pipeline.Request, len(inputs))
	for i, input := range inputs {
		reqs[i] = a.request(input)
	}

	var failed int
	for _, res := range a.pipeline.ProcessBatch(ctx, reqs) {
		if err := a.report(ctx, res); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func (a *app) summarize(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return errors.New("summarize: no files given")
	}

	texts := make([]string, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		texts[i] = string(data)
	}

	var failed int
	for i, sum := range a.summarizer.Batch(ctx, texts, a.cfg.Summarization.Concurrency) {
		name := strings.TrimSuffix(filepath.Base(files[i]), filepath.Ext(files[i]))
		if sum.Err != nil {
			a.logger.Error(ctx, "Failed to summarize %s: %v", files[i], sum.Err)
			failed++
		}
		if _, err := a.writer.WriteSummary(ctx, name, sum); err != nil {
			a.logger.Error(ctx, "Failed to write summary for %s: %v", files[i], err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d summaries failed", failed, len(files))
	}
	return nil
}

// evaluate scores generated summaries against references read from CSV
// files, one report per argument.
func (a *app) evaluate(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("evaluate: no csv files given")
	}

	ev, err := evaluator.New(a.cfg.Evaluation, a.embedder, a.logger)
	if err != nil {
		return fmt.Errorf("create evaluator: %w", err)
	}

	for _, path := range paths {
		pairs, err := evaluator.ReadPairs(path, a.refCol, a.genCol)
		if err != nil {
			return err
		}
		a.logger.Info(ctx, "Evaluating %d pairs from %s", len(pairs.References), path)

		res, err := ev.Evaluate(ctx, pairs.Generated, pairs.References)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := a.writer.WriteEvaluation(ctx, name, res); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) watch(ctx context.Context) error {
	w, err := watcher.New(a.cfg.Paths.Input, a.handleDrop, a.logger, watcher.Options{
		MaxConcurrent:   a.cfg.Performance.MaxConcurrent,
		IncludeExisting: a.includeExisting,
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Audio Digest Pipeline is ready!")
	a.logger.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.logger.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	return w.Start(ctx)
}

func (a *app) handleDrop(ctx context.Context, path string) error {
	if watcher.IsURLList(path) {
		urls, err := downloader.ReadURLList(path)
		if err != nil {
			return err
		}
		return a.processAll(ctx, urls)
	}
	return a.report(ctx, a.pipeline.Process(ctx, a.request(path)))
}

// report writes the result files and returns the request error, if any.
func (a *app) report(ctx context.Context, res *pipeline.Result) error {
	if _, err := a.writer.Write(ctx, res); err != nil {
		a.logger.Warn(ctx, "Failed to write report for %s: %v", res.Request.Input, err)
	}
	if res.Err != nil {
		a.logger.Error(ctx, "Failed %s: %v", res.Request.Input, res.Err)
		return res.Err
	}
	return nil
}

// collectInputs expands a directory into its audio files or a URL list
// into its URLs.
func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if watcher.IsURLList(path) {
			return downloader.ReadURLList(path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var inputs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !watcher.IsSupported(name) || watcher.IsURLList(name) {
			continue
		}
		inputs = append(inputs, filepath.Join(path, name))
	}
	return inputs, nil
}
