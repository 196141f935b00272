package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Source is a resolved audio input. It is not modified after Inspect.
type Source struct {
	ID         string // path or URL as given by the caller
	Path       string // local PCM WAV
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Segment is a sub-span of a Source. Start and End are offsets into the
// original audio, not into the chunk file.
type Segment struct {
	Index    int
	Start    time.Duration
	End      time.Duration
	Path     string
	SourceID string
}

// Length returns End - Start.
func (s Segment) Length() time.Duration {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("#%d [%s - %s]", s.Index, s.Start, s.End)
}

// ChunkName returns the file name used for segment i of the given source file.
func ChunkName(sourcePath string, i int) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_chunk_%d.wav", base, i)
}
