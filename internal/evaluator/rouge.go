package evaluator

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases text, turns every non-alphanumeric run into a space
// and stems tokens longer than three characters.
func Tokenize(text string) []string {
	text = reNonAlnum.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(text)
	for i, f := range fields {
		if len(f) > 3 {
			fields[i] = english.Stem(f, false)
		}
	}
	return fields
}

// RougeN scores n-gram overlap of prediction against reference.
func RougeN(reference, prediction []string, n int) PRF {
	ref := ngrams(reference, n)
	pred := ngrams(prediction, n)

	refTotal, predTotal, overlap := 0, 0, 0
	for _, c := range ref {
		refTotal += c
	}
	for g, c := range pred {
		predTotal += c
		overlap += min(c, ref[g])
	}
	return prf(overlap, predTotal, refTotal)
}

// RougeL scores the longest common subsequence of prediction and reference.
func RougeL(reference, prediction []string) PRF {
	return prf(lcs(reference, prediction), len(prediction), len(reference))
}

func ngrams(tokens []string, n int) map[string]int {
	out := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		out[strings.Join(tokens[i:i+n], " ")]++
	}
	return out
}

func lcs(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func prf(overlap, predTotal, refTotal int) PRF {
	var out PRF
	if predTotal > 0 {
		out.Precision = float64(overlap) / float64(predTotal)
	}
	if refTotal > 0 {
		out.Recall = float64(overlap) / float64(refTotal)
	}
	if out.Precision+out.Recall > 0 {
		out.F1 = 2 * out.Precision * out.Recall / (out.Precision + out.Recall)
	}
	return out
}
