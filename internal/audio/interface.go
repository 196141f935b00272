package audio

import (
	"context"
	"fmt"
	"iter"
)

// Mode selects how a Source is partitioned.
type Mode string

const (
	ModeFixed   Mode = "fixed"
	ModeSilence Mode = "silence"
)

// ParseMode converts a config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFixed, ModeSilence:
		return Mode(s), nil
	case "":
		return ModeFixed, nil
	default:
		return "", fmt.Errorf("unknown segmentation mode %q", s)
	}
}

// Segmenter splits a Source into ordered segments on the original timeline.
// When dir is non-empty every segment is also written to a chunk WAV inside dir.
// The returned sequence is lazy; iteration stops at the first error.
type Segmenter interface {
	Segment(ctx context.Context, src Source, mode Mode, dir string) iter.Seq2[Segment, error]
}

// Normalizer converts arbitrary input media into a PCM WAV that Inspect can read.
type Normalizer interface {
	ToWAV(ctx context.Context, inputPath, dir string) (string, error)
}
