package evaluator

import (
	"math"
	"strings"

	"github.com/kljensen/snowball/english"
)

// METEOR parameters as used by NLTK's meteor_score.
const (
	meteorAlpha = 0.9
	meteorBeta  = 3.0
	meteorGamma = 0.5
)

// Meteor scores prediction against reference with unigram matching in two
// stages: exact words first, then Porter2 stems of the words left over. The
// harmonic mean is weighted towards recall and reduced by a fragmentation
// penalty on the number of contiguous matched chunks.
func Meteor(reference, prediction string) float64 {
	ref := meteorWords(reference)
	pred := meteorWords(prediction)
	if len(ref) == 0 || len(pred) == 0 {
		return 0
	}

	// align[i] is the reference position matched by prediction word i, or -1.
	align := make([]int, len(pred))
	for i := range align {
		align[i] = -1
	}
	used := make([]bool, len(ref))
	matchStage(pred, ref, align, used, func(w string) string { return w })
	matchStage(pred, ref, align, used, func(w string) string { return english.Stem(w, false) })

	matches, chunks, prev := 0, 0, -2
	for _, j := range align {
		if j < 0 {
			prev = -2
			continue
		}
		matches++
		if j != prev+1 {
			chunks++
		}
		prev = j
	}
	if matches == 0 {
		return 0
	}

	p := float64(matches) / float64(len(pred))
	r := float64(matches) / float64(len(ref))
	fmean := p * r / (meteorAlpha*p + (1-meteorAlpha)*r)
	penalty := meteorGamma * math.Pow(float64(chunks)/float64(matches), meteorBeta)
	return fmean * (1 - penalty)
}

// matchStage pairs each unaligned prediction word with the first unused
// reference word that has the same form under norm.
func matchStage(pred, ref []string, align []int, used []bool, norm func(string) string) {
	refForms := make([]string, len(ref))
	for j, w := range ref {
		refForms[j] = norm(w)
	}
	for i, w := range pred {
		if align[i] >= 0 {
			continue
		}
		form := norm(w)
		for j := range ref {
			if !used[j] && refForms[j] == form {
				align[i] = j
				used[j] = true
				break
			}
		}
	}
}

func meteorWords(text string) []string {
	return strings.Fields(reNonAlnum.ReplaceAllString(strings.ToLower(text), " "))
}
