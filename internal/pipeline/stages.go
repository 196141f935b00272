package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/sentence"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/transcript"
)

// prepare resolves path into a Source the segmenter can read, converting it
// with the normalizer when it is not a WAV in the configured format.
func (p *implPipeline) prepare(ctx context.Context, path string, ws *workspace) (audio.Source, error) {
	src, err := audio.Inspect(path)
	if err == nil && p.usable(src) {
		return src, nil
	}
	if err != nil && !errors.Is(err, audio.ErrNotWAV) {
		return src, err
	}
	if p.deps.Normalizer == nil {
		return src, err
	}

	wavPath, err := p.deps.Normalizer.ToWAV(ctx, path, ws.dir)
	if err != nil {
		return src, fmt.Errorf("normalize audio: %w", err)
	}
	return audio.Inspect(wavPath)
}

func (p *implPipeline) usable(src audio.Source) bool {
	if src.Duration == 0 {
		return true
	}
	return src.SampleRate == p.cfg.FFmpeg.SampleRate && src.Channels == p.cfg.FFmpeg.Channels
}

// transcribe runs the engine over every segment in order. A failure on one
// segment is recorded in its result; only a model load failure or a
// cancelled context stops the stage. The returned slice always holds the
// results gathered so far.
func (p *implPipeline) transcribe(ctx context.Context, res *Result) ([]transcript.SegmentResult, error) {
	engine := p.deps.Transcriber
	if _, err := transcriber.ParseModel(string(res.Request.Model)); err != nil {
		return nil, fmt.Errorf("%w: %v", transcriber.ErrModelLoad, err)
	}
	if err := engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("load %s engine: %w", engine.Name(), err)
	}

	total := len(res.Segments)
	results := make([]transcript.SegmentResult, 0, total)
	for i, seg := range res.Segments {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p.logger.Info(ctx, "[%d/%d] Transcribing segment %s", i+1, total, seg)
		out, err := engine.Transcribe(ctx, transcriber.Request{
			AudioPath: seg.Path,
			Model:     res.Request.Model,
			Language:  res.Request.Language,
		})

		r := transcript.SegmentResult{Segment: seg}
		switch {
		case err == nil:
			r.Utterances = out.Utterances
			r.Language = out.Language
			r.Confidence = out.LanguageProbability
		case errors.Is(err, transcriber.ErrModelLoad):
			return results, fmt.Errorf("transcribe segment %d: %w", seg.Index, err)
		case ctx.Err() != nil:
			return results, ctx.Err()
		default:
			p.logger.Warn(ctx, "Segment %s failed, substituting empty utterance: %v", seg, err)
			r.Err = err
		}
		results = append(results, r)

		p.deps.Observer.OnEvent(Event{
			RequestID: res.ID,
			State:     StateTranscribing,
			Segment:   i + 1,
			Total:     total,
			Err:       err,
		})
	}
	return results, nil
}

func (p *implPipeline) summarize(ctx context.Context, res *Result) error {
	sum := p.deps.Summarizer.Summarize(ctx, res.Transcript.Text())
	res.Summary = &sum
	if sum.Err == nil {
		if len(sum.Chunks) > 0 {
			p.logger.Info(ctx, "Summary: %d chars from %d chunks", len([]rune(sum.Text)), len(sum.Chunks))
		} else {
			p.logger.Info(ctx, "Summary: %d chars (budget max=%d min=%d)",
				len([]rune(sum.Text)), sum.Budget.MaxLength, sum.Budget.MinLength)
		}
		return nil
	}
	if ctx.Err() != nil || p.cfg.Summarization.OnError == "fail" {
		return sum.Err
	}
	p.logger.Warn(ctx, "Summarization failed, substituting placeholder: %v", sum.Err)
	res.Summary.Text = SummaryUnavailable
	return nil
}

func (p *implPipeline) translate(ctx context.Context, res *Result) error {
	if p.deps.Translator == nil {
		return errors.New("translation requested but no translator configured")
	}
	if res.Summary.Err != nil {
		p.logger.Warn(ctx, "Skipping translation of unavailable summary")
		return nil
	}

	src := res.Transcript.Language()
	if src == "" {
		src = res.Request.Language
	}
	if src == "" {
		src = "en"
	}

	out, err := p.deps.Translator.Translate(ctx, res.Summary.Text, src, res.Request.TargetLang)
	if err != nil {
		return fmt.Errorf("translate summary %s->%s: %w", src, res.Request.TargetLang, err)
	}
	res.Translation = out
	return nil
}

func (p *implPipeline) evaluate(ctx context.Context, res *Result) error {
	if p.deps.Evaluator == nil {
		return errors.New("evaluation requested but no evaluator configured")
	}
	if res.Summary.Err != nil {
		p.logger.Warn(ctx, "Skipping evaluation of unavailable summary")
		return nil
	}

	out, err := p.deps.Evaluator.Evaluate(ctx,
		sentence.Split(res.Summary.Text),
		sentence.Split(res.Transcript.Text()))
	if err != nil {
		return fmt.Errorf("evaluate summary: %w", err)
	}
	res.Evaluation = out
	return nil
}
