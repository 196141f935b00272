package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/transcript"
)

// State is a stage of one request. Requests move through the states in
// declaration order, skipping optional stages, and end in Done or Failed.
type State string

const (
	StateIdle         State = "idle"
	StateDownloading  State = "downloading"
	StateSegmenting   State = "segmenting"
	StateTranscribing State = "transcribing"
	StateAggregating  State = "aggregating"
	StateSummarizing  State = "summarizing"
	StateTranslating  State = "translating"
	StateEvaluating   State = "evaluating"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Terminal reports whether s ends a request.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// SummaryUnavailable replaces the summary text when summarization fails
// under the substitute policy.
const SummaryUnavailable = "[summary unavailable]"

// Request is everything one run needs. Zero fields fall back to config.
type Request struct {
	// Input is a local media path or an http(s) URL.
	Input      string
	Mode       audio.Mode
	Model      transcriber.Model
	Language   string
	Translate  bool
	TargetLang string
	Evaluate   bool
}

// Result carries whatever the request produced. On failure Err is a
// *StageError and the fields filled before the failing stage are kept.
type Result struct {
	ID          string
	Request     Request
	Title       string
	Source      audio.Source
	Segments    []audio.Segment
	Transcript  transcript.Transcript
	Summary     *summarizer.Summary
	Translation string
	Evaluation  *evaluator.Result
	State       State
	Err         error
	Elapsed     time.Duration
}

// StageError reports the stage at which a request failed.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Event is emitted on every state change and once per transcribed segment.
type Event struct {
	RequestID string
	State     State
	Segment   int // 1-based, set while transcribing
	Total     int
	Err       error
}

// Observer receives pipeline events. Implementations must not block.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Pipeline runs requests end to end.
type Pipeline interface {
	Process(ctx context.Context, req Request) *Result
	// ProcessBatch runs independent requests with bounded concurrency.
	// Result i belongs to reqs[i].
	ProcessBatch(ctx context.Context, reqs []Request) []*Result
	// RunAsync runs Process on a background goroutine. The channel yields
	// exactly one result and is then closed.
	RunAsync(ctx context.Context, req Request) <-chan *Result
}
