package summarizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
)

type implHuggingFace struct {
	client *huggingface.Client
	model  string
}

// NewHuggingFace creates an Engine for a seq2seq summarization model on the
// Inference API, e.g. google/pegasus-xsum or facebook/bart-large-cnn.
func NewHuggingFace(client *huggingface.Client, model string) Engine {
	return &implHuggingFace{client: client, model: model}
}

func (h *implHuggingFace) Name() string { return "huggingface" }

type hfSummaryRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters hfSummaryParams     `json:"parameters"`
	Options    huggingface.Options `json:"options"`
}

type hfSummaryParams struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummaryResponse []struct {
	SummaryText string `json:"summary_text"`
}

func (h *implHuggingFace) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	req := hfSummaryRequest{
		Inputs: text,
		Parameters: hfSummaryParams{
			MaxLength: budget.MaxLength,
			MinLength: budget.MinLength,
			DoSample:  false,
		},
		Options: huggingface.Options{WaitForModel: true},
	}

	var resp hfSummaryResponse
	if err := h.client.Post(ctx, h.model, req, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("empty response from %s", h.model)
	}
	return resp[0].SummaryText, nil
}
