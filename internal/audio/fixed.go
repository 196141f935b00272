package audio

import "time"

// Span is a [Start, End) interval on the original timeline.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// FixedSpans partitions d into contiguous chunks of length l. There are
// d/l full chunks plus one shorter remainder chunk when d%l > 0.
func FixedSpans(d, l time.Duration) []Span {
	if d <= 0 || l <= 0 {
		return nil
	}

	n := int(d / l)
	spans := make([]Span, 0, n+1)
	for i := range n {
		start := time.Duration(i) * l
		spans = append(spans, Span{Start: start, End: start + l})
	}
	if rem := d % l; rem > 0 {
		start := time.Duration(n) * l
		spans = append(spans, Span{Start: start, End: start + rem})
	}
	return spans
}
