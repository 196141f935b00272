package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// New builds the Engine named by cfg.Transcription.Engine.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	switch cfg.Transcription.Engine {
	case "whispercpp", "":
		return NewWhisperCpp(cfg.Transcription, exec, log), nil
	case "fasterwhisper":
		return NewFasterWhisper(cfg.Transcription, exec, log), nil
	case "openai":
		return NewOpenAI(cfg.OpenAI, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Transcription.Engine)
	}
}
