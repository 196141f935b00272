package translator

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/gemini"
)

const translatePrompt = `Translate the text below from language code "%s" to language code "%s".
Reply with the translation only, no quotes or commentary.

%s`

type implGemini struct {
	client gemini.Client
}

// NewGemini creates an Engine that prompts Gemini for translations.
func NewGemini(client gemini.Client) Engine {
	return &implGemini{client: client}
}

func (g *implGemini) Name() string { return "gemini" }

func (g *implGemini) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	return g.client.Generate(ctx, fmt.Sprintf(translatePrompt, src, tgt, text))
}
