package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// ggmlFiles maps a model to its whisper.cpp weights file.
var ggmlFiles = map[Model]string{
	ModelLarge: "ggml-large-v3.bin",
	ModelTurbo: "ggml-large-v3-turbo.bin",
}

func ggmlFile(m Model) string {
	if f, ok := ggmlFiles[m]; ok {
		return f
	}
	return "ggml-" + string(m) + ".bin"
}

type implWhisperCpp struct {
	cfg      config.TranscriptionConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCpp creates an Engine that shells out to the whisper.cpp CLI.
func NewWhisperCpp(cfg config.TranscriptionConfig, exec executor.Executor, log logger.Logger) Engine {
	return &implWhisperCpp{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

func (w *implWhisperCpp) Name() string { return "whispercpp" }

func (w *implWhisperCpp) Close() error { return nil }

func (w *implWhisperCpp) modelPath(m Model) string {
	return filepath.Join(w.cfg.ModelDir, ggmlFile(m))
}

func (w *implWhisperCpp) Load(ctx context.Context) error {
	if _, err := w.executor.LookPath(w.cfg.BinaryPath); err != nil {
		return fmt.Errorf("%w: whisper binary %s: %v", ErrModelLoad, w.cfg.BinaryPath, err)
	}

	m, err := ParseModel(w.cfg.Model)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	path := w.modelPath(m)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: model file %s: %v", ErrModelLoad, path, err)
	}

	w.logger.Info(ctx, "whisper.cpp ready: model=%s threads=%d", path, w.cfg.Threads)
	return nil
}

// whisperJSON is the subset of `whisper-cli -oj` output that is used.
type whisperJSON struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *implWhisperCpp) Transcribe(ctx context.Context, req Request) (*Result, error) {
	model := req.Model
	if model == "" {
		model = Model(w.cfg.Model)
	}
	if _, err := ParseModel(string(model)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	modelPath := w.modelPath(model)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: model file %s: %v", ErrModelLoad, modelPath, err)
	}
	lang := req.Language
	if lang == "" {
		lang = "auto"
	}

	// whisper.cpp appends .json to the -of prefix.
	outputPrefix := strings.TrimSuffix(req.AudioPath, filepath.Ext(req.AudioPath))

	w.logger.Debug(ctx, "Transcribing with whisper.cpp (%s, %d threads): %s", model, w.cfg.Threads, req.AudioPath)

	// -oj: JSON output with millisecond offsets
	// -np: no progress prints on stdout
	// -bs / -tp: beam size and sampling temperature
	args := []string{
		"-m", modelPath,
		"-f", req.AudioPath,
		"-l", lang,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bs", strconv.Itoa(w.cfg.BeamSize),
		"-tp", strconv.FormatFloat(w.cfg.Temperature, 'f', -1, 64),
		"-oj",
		"-np",
		"-of", outputPrefix,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(jsonPath)

	var out whisperJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	res := &Result{Language: out.Result.Language}
	for _, t := range out.Transcription {
		res.Utterances = append(res.Utterances, Utterance{
			Start: time.Duration(t.Offsets.From) * time.Millisecond,
			End:   time.Duration(t.Offsets.To) * time.Millisecond,
			Text:  t.Text,
		})
	}
	return res, nil
}
