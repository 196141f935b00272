package summarizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/gemini"
)

const summaryPrompt = `You are summarizing a speech transcript. Write a single plain-text summary of the transcript below.

Requirements:
- Between %d and %d characters long
- Same language as the transcript
- Keep names, figures and technical terms as spoken
- No headings, bullet points or markdown

Transcript:
---
%s
---`

type implGemini struct {
	client gemini.Client
}

// NewGemini creates an Engine that prompts Gemini for a summary.
func NewGemini(client gemini.Client) Engine {
	return &implGemini{client: client}
}

func (g *implGemini) Name() string { return "gemini" }

func (g *implGemini) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, budget.MinLength, budget.MaxLength, text)
	return g.client.Generate(ctx, prompt)
}
