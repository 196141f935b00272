// Package sentence splits English text into sentences with the punkt
// tokenizer.
package sentence

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	once      sync.Once
	tokenizer *sentences.DefaultSentenceTokenizer
	initErr   error
)

func load() (*sentences.DefaultSentenceTokenizer, error) {
	once.Do(func() {
		tokenizer, initErr = english.NewSentenceTokenizer(nil)
	})
	return tokenizer, initErr
}

// Split returns the trimmed, non-empty sentences of text. If the tokenizer
// cannot be loaded it falls back to splitting on line breaks.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tok, err := load()
	if err != nil {
		return splitLines(text)
	}

	var out []string
	for _, s := range tok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Pack greedily groups consecutive sentences into chunks of at most limit
// runes, joined by a space. A single sentence longer than limit becomes its
// own chunk.
func Pack(sents []string, limit int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	for _, s := range sents {
		n := len([]rune(s))
		if curLen > 0 && curLen+1+n > limit {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(s)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
