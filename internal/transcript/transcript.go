// Package transcript merges per-segment transcription results into one
// document on the original audio timeline.
package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
)

// Utterance is a transcribed phrase with absolute offsets.
type Utterance struct {
	SegmentIndex int
	Start        time.Duration
	End          time.Duration
	Text         string
	Language     string
	Confidence   float64
	// Failed marks the placeholder for a segment whose transcription failed.
	Failed bool
}

// SegmentResult pairs a segment with what the engine returned for it.
// Err is set when the segment could not be transcribed.
type SegmentResult struct {
	Segment    audio.Segment
	Utterances []transcriber.Utterance
	Language   string
	Confidence float64
	Err        error
}

// Transcript is the aggregated, read-only result. Build it with Aggregate.
type Transcript struct {
	utterances []Utterance
	text       string
}

// Aggregate re-bases each segment's utterances onto the original timeline
// and concatenates their text in input order with no separator. Inputs
// are not re-sorted. A failed segment contributes one empty placeholder
// utterance spanning the segment.
func Aggregate(results []SegmentResult) Transcript {
	var (
		out []Utterance
		b   strings.Builder
	)
	for _, r := range results {
		seg := r.Segment
		if r.Err != nil {
			out = append(out, Utterance{
				SegmentIndex: seg.Index,
				Start:        seg.Start,
				End:          seg.End,
				Failed:       true,
			})
			continue
		}

		for _, u := range r.Utterances {
			conf := u.Confidence
			if conf == 0 {
				conf = r.Confidence
			}
			out = append(out, Utterance{
				SegmentIndex: seg.Index,
				Start:        rebase(seg, u.Start),
				End:          rebase(seg, u.End),
				Text:         u.Text,
				Language:     r.Language,
				Confidence:   conf,
			})
			b.WriteString(u.Text)
		}
	}
	return Transcript{utterances: out, text: b.String()}
}

// rebase shifts a segment-relative offset by the segment start, clamped
// to the segment bounds.
func rebase(seg audio.Segment, d time.Duration) time.Duration {
	abs := seg.Start + max(d, 0)
	if seg.End > seg.Start && abs > seg.End {
		return seg.End
	}
	return abs
}

// Utterances returns a copy of the utterances in aggregation order.
func (t Transcript) Utterances() []Utterance {
	out := make([]Utterance, len(t.utterances))
	copy(out, t.utterances)
	return out
}

// Text is the concatenated utterance text.
func (t Transcript) Text() string {
	return t.text
}

// Len returns the number of utterances, placeholders included.
func (t Transcript) Len() int {
	return len(t.utterances)
}

// Sorted reports whether utterances are ordered by start time and do not
// overlap. It is false when the inputs to Aggregate were out of order.
func (t Transcript) Sorted() bool {
	for i := 1; i < len(t.utterances); i++ {
		prev, cur := t.utterances[i-1], t.utterances[i]
		if cur.Start < prev.Start || cur.Start < prev.End {
			return false
		}
	}
	return true
}

// FailedSegments returns the indexes of segments that produced a placeholder.
func (t Transcript) FailedSegments() []int {
	var idx []int
	for _, u := range t.utterances {
		if u.Failed {
			idx = append(idx, u.SegmentIndex)
		}
	}
	return idx
}

// Language returns the most frequent language tag. On a tie the language
// that reached the count first wins.
func (t Transcript) Language() string {
	counts := map[string]int{}
	best, bestN := "", 0
	for _, u := range t.utterances {
		if u.Language == "" {
			continue
		}
		counts[u.Language]++
		if n := counts[u.Language]; n > bestN {
			best, bestN = u.Language, n
		}
	}
	return best
}

// FormatTimestamp renders d as HH:MM:SS.mmm.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}
