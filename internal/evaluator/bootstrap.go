package evaluator

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Aggregator combines per-pair scores by bootstrap resampling.
type Aggregator struct {
	samples int
	rng     *rand.Rand
}

// NewAggregator returns an Aggregator drawing samples resamples from a
// generator seeded with seed.
func NewAggregator(samples int, seed int64) *Aggregator {
	if samples <= 0 {
		samples = 1000
	}
	return &Aggregator{
		samples: samples,
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Aggregate returns low/mid/high at the 2.5/50/97.5 percentiles of the
// bootstrap mean, plus mean and median of the per-pair F1.
func (a *Aggregator) Aggregate(scores []PRF) Score {
	if len(scores) == 0 {
		return Score{}
	}

	n := len(scores)
	ps := make([]float64, a.samples)
	rs := make([]float64, a.samples)
	fs := make([]float64, a.samples)
	for s := range a.samples {
		var mean PRF
		for range n {
			x := scores[a.rng.IntN(n)]
			mean.Precision += x.Precision
			mean.Recall += x.Recall
			mean.F1 += x.F1
		}
		ps[s] = mean.Precision / float64(n)
		rs[s] = mean.Recall / float64(n)
		fs[s] = mean.F1 / float64(n)
	}
	slices.Sort(ps)
	slices.Sort(rs)
	slices.Sort(fs)

	at := func(q float64) PRF {
		return PRF{Precision: percentile(ps, q), Recall: percentile(rs, q), F1: percentile(fs, q)}
	}

	f1 := make([]float64, n)
	for i, x := range scores {
		f1[i] = x.F1
	}

	return Score{
		Low:      at(2.5),
		Mid:      at(50),
		High:     at(97.5),
		MeanF1:   mean(f1),
		MedianF1: median(f1),
	}
}

// percentile interpolates linearly between closest ranks of sorted.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	return percentile(s, 50)
}
