package audio

import (
	"math"
	"time"
)

// SilenceConfig controls silence-based splitting.
type SilenceConfig struct {
	MinSilence  time.Duration // shortest run that counts as a boundary
	ThresholdDB float64       // dBFS below which a window is silent
	KeepSilence time.Duration // padding kept on both edges of each span
}

// DefaultSilenceConfig matches the split settings used for speech chunks.
func DefaultSilenceConfig() SilenceConfig {
	return SilenceConfig{
		MinSilence:  500 * time.Millisecond,
		ThresholdDB: -40,
		KeepSilence: 200 * time.Millisecond,
	}
}

// Run is one non-silent span expressed relative to the end of the previous
// run: Gap is the distance skipped since then, Length is the span itself.
type Run struct {
	Gap    time.Duration
	Length time.Duration
}

// detectSilence returns [start, end) millisecond ranges whose sliding
// MinSilence window stays below the threshold.
func detectSilence(p *pcm, cfg SilenceConfig) [][2]int {
	totalMs := int(p.duration() / time.Millisecond)
	minMs := int(cfg.MinSilence / time.Millisecond)
	if minMs <= 0 {
		minMs = 1
	}
	if totalMs < minMs {
		return nil
	}

	// prefix[i] = sum of squared samples in the first i milliseconds.
	prefix := make([]float64, totalMs+1)
	for ms := range totalMs {
		from := p.frameAt(time.Duration(ms)*time.Millisecond) * p.channels
		to := p.frameAt(time.Duration(ms+1)*time.Millisecond) * p.channels
		var sum float64
		for _, s := range p.data[from:to] {
			v := float64(s)
			sum += v * v
		}
		prefix[ms+1] = prefix[ms] + sum
	}

	thresh := math.Pow(10, cfg.ThresholdDB/20) * p.maxAmplitude()
	samplesIn := func(fromMs, toMs int) int {
		a := p.frameAt(time.Duration(fromMs) * time.Millisecond)
		b := p.frameAt(time.Duration(toMs) * time.Millisecond)
		return (b - a) * p.channels
	}

	var ranges [][2]int
	prev := -1
	start := -1
	for i := 0; i+minMs <= totalMs; i++ {
		n := samplesIn(i, i+minMs)
		rms := 0.0
		if n > 0 {
			rms = math.Sqrt((prefix[i+minMs] - prefix[i]) / float64(n))
		}
		if rms > thresh {
			continue
		}
		switch {
		case start < 0:
			start = i
		case i != prev+1:
			ranges = append(ranges, [2]int{start, prev + minMs})
			start = i
		}
		prev = i
	}
	if start >= 0 {
		ranges = append(ranges, [2]int{start, prev + minMs})
	}
	return ranges
}

// detectNonSilent inverts detectSilence over [0, totalMs).
func detectNonSilent(p *pcm, cfg SilenceConfig) [][2]int {
	totalMs := int(p.duration() / time.Millisecond)
	if totalMs == 0 {
		return nil
	}

	silent := detectSilence(p, cfg)
	if len(silent) == 0 {
		return [][2]int{{0, totalMs}}
	}
	if silent[0][0] == 0 && silent[0][1] == totalMs {
		return nil
	}

	var out [][2]int
	prevEnd := 0
	for _, r := range silent {
		out = append(out, [2]int{prevEnd, r[0]})
		prevEnd = r[1]
	}
	if prevEnd != totalMs {
		out = append(out, [2]int{prevEnd, totalMs})
	}
	if len(out) > 0 && out[0] == [2]int{0, 0} {
		out = out[1:]
	}
	return out
}

// silenceRuns splits p at silence and pads each span by KeepSilence.
// Overlapping pads between neighbours are resolved at their midpoint.
func silenceRuns(p *pcm, cfg SilenceConfig) []Run {
	spans := detectNonSilent(p, cfg)
	if len(spans) == 0 {
		return nil
	}

	keep := int(cfg.KeepSilence / time.Millisecond)
	totalMs := int(p.duration() / time.Millisecond)

	padded := make([][2]int, len(spans))
	for i, s := range spans {
		padded[i] = [2]int{s[0] - keep, s[1] + keep}
	}
	for i := 0; i+1 < len(padded); i++ {
		if next := padded[i+1][0]; next < padded[i][1] {
			mid := (padded[i][1] + next) / 2
			padded[i][1] = mid
			padded[i+1][0] = mid
		}
	}

	runs := make([]Run, 0, len(padded))
	cursor := 0
	for _, s := range padded {
		start := max(s[0], 0)
		end := min(s[1], totalMs)
		if end <= start {
			continue
		}
		runs = append(runs, Run{
			Gap:    time.Duration(start-cursor) * time.Millisecond,
			Length: time.Duration(end-start) * time.Millisecond,
		})
		cursor = end
	}
	return runs
}
