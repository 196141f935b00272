package audio

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func spansOf(runs []Run) []Span {
	var spans []Span
	var cursor time.Duration
	for _, r := range runs {
		cursor += r.Gap
		spans = append(spans, Span{Start: cursor, End: cursor + r.Length})
		cursor += r.Length
	}
	return spans
}

func TestSilenceRuns(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name    string
		samples []int
		cfg     SilenceConfig
		want    []Span
	}{
		{
			name:    "two phrases split at gap",
			samples: concat(tone(1000, 10000), silence(1000), tone(1000, 10000)),
			cfg:     DefaultSilenceConfig(),
			want:    []Span{{0, 1200 * ms}, {1800 * ms, 3000 * ms}},
		},
		{
			name:    "colliding padding meets at midpoint",
			samples: concat(tone(1000, 10000), silence(600), tone(1000, 10000)),
			cfg:     SilenceConfig{MinSilence: 500 * ms, ThresholdDB: -40, KeepSilence: 400 * ms},
			want:    []Span{{0, 1300 * ms}, {1300 * ms, 2600 * ms}},
		},
		{
			name:    "no silence yields whole file",
			samples: tone(2000, 10000),
			cfg:     DefaultSilenceConfig(),
			want:    []Span{{0, 2000 * ms}},
		},
		{
			name:    "shorter than min silence yields whole file",
			samples: silence(300),
			cfg:     DefaultSilenceConfig(),
			want:    []Span{{0, 300 * ms}},
		},
		{
			name:    "all silent yields nothing",
			samples: silence(2000),
			cfg:     DefaultSilenceConfig(),
			want:    nil,
		},
		{
			name:    "quiet tone below threshold counts as silence",
			samples: concat(tone(1000, 10000), tone(1000, 100), tone(1000, 10000)),
			cfg:     DefaultSilenceConfig(),
			want:    []Span{{0, 1200 * ms}, {1800 * ms, 3000 * ms}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &pcm{data: tt.samples, channels: 1, sampleRate: testRate, bitDepth: 16}
			got := spansOf(silenceRuns(p, tt.cfg))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("silence spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSilenceRunsGapsNeverNegative(t *testing.T) {
	samples := concat(
		silence(400), tone(700, 9000), silence(550), tone(300, 9000),
		silence(900), tone(1200, 9000), silence(520),
	)
	p := &pcm{data: samples, channels: 1, sampleRate: testRate, bitDepth: 16}
	cfg := SilenceConfig{MinSilence: 500 * time.Millisecond, ThresholdDB: -40, KeepSilence: 300 * time.Millisecond}

	runs := silenceRuns(p, cfg)
	if len(runs) == 0 {
		t.Fatal("expected at least one run")
	}
	var end time.Duration
	for i, r := range runs {
		if r.Gap < 0 || r.Length <= 0 {
			t.Errorf("run %d = %+v, want gap >= 0 and length > 0", i, r)
		}
		end += r.Gap + r.Length
	}
	if end > p.duration() {
		t.Errorf("runs end at %v, past audio end %v", end, p.duration())
	}
}
