package output

import (
	"context"

	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
)

// Files lists what one Write call produced.
type Files struct {
	Markdown string
	Docx     string
}

// Writer persists pipeline results under an output directory.
type Writer interface {
	// Write renders res as <name>.md and <name>.docx, where name is derived
	// from the result title and the short request ID.
	Write(ctx context.Context, res *pipeline.Result) (Files, error)
	// WriteSummary stores a standalone text summary as <name>.summary.md.
	WriteSummary(ctx context.Context, name string, sum summarizer.Summary) (string, error)
	// WriteEvaluation stores dataset scores as <name>.evaluation.md.
	WriteEvaluation(ctx context.Context, name string, ev *evaluator.Result) (string, error)
}
