package transcriber

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	cfg    config.OpenAIConfig
	client *openai.Client
	logger logger.Logger
}

// NewOpenAI creates an Engine backed by the OpenAI transcription API.
func NewOpenAI(cfg config.OpenAIConfig, log logger.Logger) Engine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &implOpenAI{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: log,
	}
}

func (o *implOpenAI) Name() string { return "openai" }

func (o *implOpenAI) Close() error { return nil }

func (o *implOpenAI) Load(ctx context.Context) error {
	if o.cfg.APIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrModelLoad)
	}
	o.logger.Info(ctx, "OpenAI transcription ready: model=%s", o.cfg.Model)
	return nil
}

func (o *implOpenAI) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if req.Model != "" {
		o.logger.Debug(ctx, "OpenAI ignores model size %s, using %s", req.Model, o.cfg.Model)
	}

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: req.AudioPath,
		Language: req.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) &&
			(apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: openai: %v", ErrModelLoad, err)
		}
		return nil, fmt.Errorf("openai transcribe: %w", err)
	}

	res := &Result{Language: resp.Language}
	for _, s := range resp.Segments {
		res.Utterances = append(res.Utterances, Utterance{
			Start:      seconds(s.Start),
			End:        seconds(s.End),
			Text:       s.Text,
			Confidence: math.Exp(s.AvgLogprob),
		})
	}
	if len(res.Utterances) == 0 && resp.Text != "" {
		res.Utterances = []Utterance{{End: seconds(resp.Duration), Text: resp.Text}}
	}
	return res, nil
}
