package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/audio-digest/internal/downloader"
	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
)

func (w *implWriter) Write(ctx context.Context, res *pipeline.Result) (Files, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	name := downloader.FormatFilename(reportName(res), downloader.NoChunk)
	files := Files{
		Markdown: filepath.Join(w.dir, name+".md"),
		Docx:     filepath.Join(w.dir, name+".docx"),
	}

	if err := os.WriteFile(files.Markdown, []byte(RenderMarkdown(res)), 0644); err != nil {
		return Files{}, fmt.Errorf("write markdown: %w", err)
	}
	w.logger.Info(ctx, "Report written: %s", files.Markdown)

	if err := markdownToDocx(title(res), renderBody(res), files.Docx); err != nil {
		w.logger.Warn(ctx, "Failed to write docx %s: %v", files.Docx, err)
		return Files{Markdown: files.Markdown}, fmt.Errorf("write docx: %w", err)
	}
	w.logger.Info(ctx, "Report written: %s", files.Docx)
	return files, nil
}

// reportName is the title followed by the short request ID, so two inputs
// sharing a title in one batch land in different files.
func reportName(res *pipeline.Result) string {
	id := res.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return title(res)
	}
	return title(res) + " " + id
}

func (w *implWriter) WriteSummary(ctx context.Context, name string, sum summarizer.Summary) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, downloader.FormatFilename(name, downloader.NoChunk)+".summary.md")
	if err := os.WriteFile(path, []byte(RenderSummary(name, sum)), 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	w.logger.Info(ctx, "Summary written: %s", path)
	return path, nil
}

func (w *implWriter) WriteEvaluation(ctx context.Context, name string, ev *evaluator.Result) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, downloader.FormatFilename(name, downloader.NoChunk)+".evaluation.md")
	if err := os.WriteFile(path, []byte(RenderEvaluation(name, ev)), 0644); err != nil {
		return "", fmt.Errorf("write evaluation: %w", err)
	}
	w.logger.Info(ctx, "Evaluation written: %s", path)
	return path, nil
}
