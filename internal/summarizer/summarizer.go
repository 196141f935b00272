package summarizer

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/nguyentantai21042004/audio-digest/internal/sentence"
)

func (s *implSummarizer) Policy() LengthPolicy {
	return s.policy
}

// Summarize summarizes text under the length policy. Text longer than the
// configured chunk size is split at sentence boundaries and each chunk is
// summarized with its own budget. The parts are joined by a space.
func (s *implSummarizer) Summarize(ctx context.Context, text string) Summary {
	sum := Summary{
		Source: text,
		Budget: s.policy.Budget(text),
		Engine: s.engine.Name(),
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Debug(ctx, "Empty text, skipping summarizer call")
		return sum
	}

	chunks := []string{text}
	if s.chunkChars > 0 && utf8.RuneCountInString(text) > s.chunkChars {
		chunks = sentence.Pack(sentence.Split(text), s.chunkChars)
		s.logger.Info(ctx, "Text split into %d chunks of <= %d chars", len(chunks), s.chunkChars)
	}
	if len(chunks) > 1 {
		sum.Budget = Budget{}
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		budget := sum.Budget
		if len(chunks) > 1 {
			budget = s.policy.Budget(chunk)
			sum.Chunks = append(sum.Chunks, budget)
		}

		s.logger.Debug(ctx, "[%d/%d] Summarizing %d chars (max=%d min=%d)",
			i+1, len(chunks), utf8.RuneCountInString(chunk), budget.MaxLength, budget.MinLength)

		out, err := s.engine.Summarize(ctx, chunk, budget)
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize chunk %d: %v", i+1, err)
			sum.Err = &EngineError{Engine: s.engine.Name(), Err: err}
			return sum
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	sum.Text = strings.Join(parts, " ")
	return sum
}

// Batch summarizes texts concurrently, bounded by concurrency. Each result
// is stored at its input index so output order matches input order.
func (s *implSummarizer) Batch(ctx context.Context, texts []string, concurrency int) []Summary {
	results := make([]Summary, len(texts))
	sem := newSemaphore(concurrency)

	var wg sync.WaitGroup
	for i, text := range texts {
		if err := sem.acquire(ctx); err != nil {
			for j := i; j < len(texts); j++ {
				results[j] = Summary{Source: texts[j], Budget: s.policy.Budget(texts[j]), Engine: s.engine.Name(), Err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer sem.release()
			results[i] = s.Summarize(ctx, text)
		}(i, text)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info(ctx, "Batch complete: %d success, %d failed", len(results)-failed, failed)
	return results
}
