package audio

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"time"
)

func (s *implSegmenter) Segment(ctx context.Context, src Source, mode Mode, dir string) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		if src.Duration <= 0 {
			s.logger.Debug(ctx, "Empty audio, no segments: %s", src.ID)
			return
		}

		var p *pcm
		if mode == ModeSilence || dir != "" {
			var err error
			if p, err = readPCM(src.Path); err != nil {
				yield(Segment{}, err)
				return
			}
		}

		spans, err := s.plan(src, mode, p)
		if err != nil {
			yield(Segment{}, err)
			return
		}
		s.logger.Info(ctx, "Segmenting %s (%s mode): %d segments", src.ID, mode, len(spans))

		for i, span := range spans {
			if err := ctx.Err(); err != nil {
				yield(Segment{}, err)
				return
			}

			seg := Segment{
				Index:    i,
				Start:    span.Start,
				End:      span.End,
				SourceID: src.ID,
			}
			if dir != "" {
				seg.Path = filepath.Join(dir, ChunkName(src.Path, i))
				if err := p.writeSpan(seg.Path, span.Start, span.End); err != nil {
					yield(Segment{}, fmt.Errorf("write segment %d: %w", i, err))
					return
				}
			}

			if !yield(seg, nil) {
				return
			}
		}
	}
}

// plan computes segment boundaries. Silence runs are converted to absolute
// offsets by accumulating each consumed gap and length.
func (s *implSegmenter) plan(src Source, mode Mode, p *pcm) ([]Span, error) {
	switch mode {
	case ModeFixed, "":
		return FixedSpans(src.Duration, s.chunkLength), nil
	case ModeSilence:
		runs := silenceRuns(p, s.silence)
		spans := make([]Span, 0, len(runs))
		var cursor time.Duration
		for _, r := range runs {
			cursor += r.Gap
			spans = append(spans, Span{Start: cursor, End: cursor + r.Length})
			cursor += r.Length
		}
		return spans, nil
	default:
		return nil, fmt.Errorf("unknown segmentation mode %q", mode)
	}
}
