package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/audio-digest/internal/evaluator"
	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
	"github.com/nguyentantai21042004/audio-digest/internal/transcript"
)

// RenderMarkdown renders a full report for res.
func RenderMarkdown(res *pipeline.Result) string {
	return "# " + title(res) + "\n\n" + renderBody(res)
}

// RenderSummary renders a standalone summary report.
func RenderSummary(name string, sum summarizer.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "- Engine: %s\n", sum.Engine)
	if len(sum.Chunks) == 0 {
		fmt.Fprintf(&b, "- Budget: max %d, min %d\n", sum.Budget.MaxLength, sum.Budget.MinLength)
	}
	for i, c := range sum.Chunks {
		fmt.Fprintf(&b, "- Chunk %d budget: max %d, min %d\n", i+1, c.MaxLength, c.MinLength)
	}
	if sum.Err != nil {
		fmt.Fprintf(&b, "- Error: %v\n", sum.Err)
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString(sum.Text)
	b.WriteString("\n")
	return b.String()
}

// RenderEvaluation renders scores of a reference dataset.
func RenderEvaluation(name string, ev *evaluator.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	renderEvaluation(&b, ev)
	return b.String()
}

func title(res *pipeline.Result) string {
	if res.Title != "" {
		return res.Title
	}
	return res.Request.Input
}

func renderBody(res *pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "- **Source:** %s\n", res.Request.Input)
	fmt.Fprintf(&b, "- **Request:** %s\n", res.ID)
	fmt.Fprintf(&b, "- **Duration:** %s\n", res.Source.Duration)
	fmt.Fprintf(&b, "- **Segments:** %d (%s mode)\n", len(res.Segments), res.Request.Mode)
	if lang := res.Transcript.Language(); lang != "" {
		fmt.Fprintf(&b, "- **Language:** %s\n", lang)
	}
	fmt.Fprintf(&b, "- **State:** %s\n", res.State)
	if res.Err != nil {
		fmt.Fprintf(&b, "- **Error:** %v\n", res.Err)
	}

	if res.Summary != nil {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(res.Summary.Text)
		b.WriteString("\n")
	}

	if res.Translation != "" {
		fmt.Fprintf(&b, "\n## Translation (%s)\n\n", res.Request.TargetLang)
		b.WriteString(res.Translation)
		b.WriteString("\n")
	}

	if res.Evaluation != nil {
		b.WriteString("\n## Evaluation\n\n")
		renderEvaluation(&b, res.Evaluation)
	}

	if res.Transcript.Len() > 0 {
		b.WriteString("\n## Transcript\n\n")
		renderTranscript(&b, res.Transcript)
	}
	return b.String()
}

func renderEvaluation(b *strings.Builder, ev *evaluator.Result) {
	fmt.Fprintf(b, "- **Pairs:** %d", ev.Pairs)
	if ev.Truncated {
		b.WriteString(" (truncated)")
	}
	b.WriteString("\n")

	for _, name := range sortedKeys(ev.Scores) {
		s := ev.Scores[name]
		fmt.Fprintf(b, "- **%s:** F1 %.4f [%.4f, %.4f], P %.4f, R %.4f, mean %.4f, median %.4f\n",
			name, s.Mid.F1, s.Low.F1, s.High.F1, s.Mid.Precision, s.Mid.Recall, s.MeanF1, s.MedianF1)
	}
	for _, name := range sortedKeys(ev.Scalars) {
		s := ev.Scalars[name]
		fmt.Fprintf(b, "- **%s:** mean %.4f, median %.4f\n", name, s.Mean, s.Median)
	}
}

func renderTranscript(b *strings.Builder, t transcript.Transcript) {
	for _, u := range t.Utterances() {
		text := strings.TrimSpace(u.Text)
		if u.Failed {
			text = "(transcription failed)"
		}
		fmt.Fprintf(b, "- **[%s - %s]** %s\n",
			transcript.FormatTimestamp(u.Start), transcript.FormatTimestamp(u.End), text)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
