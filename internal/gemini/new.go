package gemini

import (
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"google.golang.org/genai"
)

type implClient struct {
	apiKeys []string
	model   string
	baseURL string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// New creates a Client that rotates through the configured API keys.
func New(cfg config.GeminiConfig, log logger.Logger) (Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, ErrNoKeys
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implClient{
		apiKeys: cfg.APIKeys,
		model:   model,
		baseURL: cfg.BaseURL,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}, nil
}
