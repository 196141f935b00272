package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/downloader"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/transcript"
)

// Process runs one request through every stage in order. It never returns
// nil; on failure the result carries a *StageError and any partial output.
func (p *implPipeline) Process(ctx context.Context, req Request) *Result {
	startTime := time.Now()
	req = p.withDefaults(req)
	res := &Result{ID: uuid.NewString(), Request: req, State: StateIdle}
	ctx = logger.WithRequestID(ctx, res.ID)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting request %s: %s", res.ID, req.Input)
	p.logger.Info(ctx, "========================================")

	ws, err := p.newWorkspace()
	if err != nil {
		p.fail(ctx, res, StateIdle, fmt.Errorf("create workspace: %w", err))
		res.Elapsed = time.Since(startTime)
		return res
	}
	defer ws.release(ctx, p.logger)

	if stage, err := p.run(ctx, res, ws); err != nil {
		p.fail(ctx, res, stage, err)
		res.Elapsed = time.Since(startTime)
		return res
	}
	p.transition(ctx, res, StateDone)
	res.Elapsed = time.Since(startTime)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Segments: %d, utterances: %d", len(res.Segments), res.Transcript.Len())
	if failed := res.Transcript.FailedSegments(); len(failed) > 0 {
		p.logger.Warn(ctx, "Segments without transcription: %v", failed)
	}
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")
	return res
}

// RunAsync offloads Process to a goroutine so a caller can keep rendering
// progress. In-flight external calls are not interrupted by the caller.
func (p *implPipeline) RunAsync(ctx context.Context, req Request) <-chan *Result {
	ch := make(chan *Result, 1)
	go func() {
		defer close(ch)
		ch <- p.Process(ctx, req)
	}()
	return ch
}

// run executes the stages and returns the failing stage on error.
func (p *implPipeline) run(ctx context.Context, res *Result, ws *workspace) (State, error) {
	req := res.Request
	path := req.Input

	// Stage: acquire audio
	if downloader.IsURL(req.Input) {
		p.transition(ctx, res, StateDownloading)
		if p.deps.Downloader == nil {
			return StateDownloading, errors.New("no downloader configured for url input")
		}
		dl := p.deps.Downloader.Download(ctx, req.Input, ws.dir)
		res.Title = dl.Title
		if dl.Err != nil {
			return StateDownloading, dl.Err
		}
		path = dl.Path
	} else {
		res.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Stage: segment
	p.transition(ctx, res, StateSegmenting)
	src, err := p.prepare(ctx, path, ws)
	if err != nil {
		return StateSegmenting, err
	}
	src.ID = req.Input
	res.Source = src
	p.logger.Info(ctx, "Audio: %s, %d Hz, %d ch", src.Duration, src.SampleRate, src.Channels)

	for seg, err := range p.deps.Segmenter.Segment(ctx, src, req.Mode, ws.dir) {
		if err != nil {
			return StateSegmenting, fmt.Errorf("segment audio: %w", err)
		}
		res.Segments = append(res.Segments, seg)
	}

	// Stage: transcribe
	p.transition(ctx, res, StateTranscribing)
	results, err := p.transcribe(ctx, res)
	if err != nil {
		res.Transcript = transcript.Aggregate(results)
		return StateTranscribing, err
	}

	// Stage: aggregate
	p.transition(ctx, res, StateAggregating)
	res.Transcript = transcript.Aggregate(results)

	// Stage: summarize
	p.transition(ctx, res, StateSummarizing)
	if err := p.summarize(ctx, res); err != nil {
		return StateSummarizing, err
	}

	if req.Translate {
		p.transition(ctx, res, StateTranslating)
		if err := p.translate(ctx, res); err != nil {
			return StateTranslating, err
		}
	}

	if req.Evaluate {
		p.transition(ctx, res, StateEvaluating)
		if err := p.evaluate(ctx, res); err != nil {
			return StateEvaluating, err
		}
	}
	return "", nil
}

func (p *implPipeline) withDefaults(req Request) Request {
	if req.Mode == "" {
		req.Mode = audio.Mode(p.cfg.Segmentation.Mode)
	}
	if req.Model == "" {
		req.Model = transcriber.Model(p.cfg.Transcription.Model)
	}
	if req.Language == "" {
		req.Language = p.cfg.Transcription.Language
	}
	if req.TargetLang == "" {
		req.TargetLang = p.cfg.Translation.TargetLang
	}
	return req
}

func (p *implPipeline) transition(ctx context.Context, res *Result, state State) {
	res.State = state
	p.logger.Info(ctx, "Stage: %s", state)
	p.deps.Observer.OnEvent(Event{RequestID: res.ID, State: state})
}

func (p *implPipeline) fail(ctx context.Context, res *Result, stage State, err error) {
	res.Err = &StageError{Stage: stage, Err: err}
	res.State = StateFailed
	p.logger.Error(ctx, "Request failed at %s: %v", stage, err)
	p.deps.Observer.OnEvent(Event{RequestID: res.ID, State: StateFailed, Err: res.Err})
}
