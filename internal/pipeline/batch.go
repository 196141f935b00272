package pipeline

import (
	"context"
	"sync"
)

// ProcessBatch runs reqs with at most performance.max_concurrent in flight.
// Requests not started before ctx is done get a failed result.
func (p *implPipeline) ProcessBatch(ctx context.Context, reqs []Request) []*Result {
	maxConcurrent := p.cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	p.logger.Info(ctx, "Processing batch of %d (max concurrent: %d)", len(reqs), maxConcurrent)

	results := make([]*Result, len(reqs))
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, req := range reqs {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			for j := i; j < len(reqs); j++ {
				results[j] = &Result{
					Request: reqs[j],
					State:   StateFailed,
					Err:     &StageError{Stage: StateIdle, Err: ctx.Err()},
				}
			}
			wg.Wait()
			return results
		}

		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i] = p.Process(ctx, req)
		}(i, req)
	}
	wg.Wait()
	return results
}
