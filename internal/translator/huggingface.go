package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
)

type implHuggingFace struct {
	client  *huggingface.Client
	pattern string
}

// NewHuggingFace creates an Engine for MarianMT style models. pattern holds
// {src} and {tgt} placeholders, e.g. Helsinki-NLP/opus-mt-{src}-{tgt}.
func NewHuggingFace(client *huggingface.Client, pattern string) Engine {
	return &implHuggingFace{client: client, pattern: pattern}
}

func (h *implHuggingFace) Name() string { return "huggingface" }

// ModelFor expands the model pattern for a language pair.
func (h *implHuggingFace) ModelFor(src, tgt string) string {
	return strings.NewReplacer("{src}", src, "{tgt}", tgt).Replace(h.pattern)
}

type hfTranslateRequest struct {
	Inputs  string              `json:"inputs"`
	Options huggingface.Options `json:"options"`
}

type hfTranslateResponse []struct {
	TranslationText string `json:"translation_text"`
}

func (h *implHuggingFace) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	model := h.ModelFor(src, tgt)

	var resp hfTranslateResponse
	req := hfTranslateRequest{Inputs: text, Options: huggingface.Options{WaitForModel: true}}
	if err := h.client.Post(ctx, model, req, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("empty response from %s", model)
	}
	return resp[0].TranslationText, nil
}
