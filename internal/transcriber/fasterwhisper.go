package transcriber

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

//go:embed assets/faster_whisper.py
var fasterWhisperScript []byte

// exitModelLoad is the helper's exit status when the model cannot be loaded.
const exitModelLoad = 3

type implFasterWhisper struct {
	cfg      config.TranscriptionConfig
	executor executor.Executor
	logger   logger.Logger

	once       sync.Once
	scriptPath string
	scriptErr  error
}

// NewFasterWhisper creates an Engine backed by an embedded python helper
// around faster-whisper.
func NewFasterWhisper(cfg config.TranscriptionConfig, exec executor.Executor, log logger.Logger) Engine {
	return &implFasterWhisper{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

func (f *implFasterWhisper) Name() string { return "fasterwhisper" }

// Close removes the extracted helper script.
func (f *implFasterWhisper) Close() error {
	if f.scriptPath == "" {
		return nil
	}
	return os.Remove(f.scriptPath)
}

func (f *implFasterWhisper) script() (string, error) {
	f.once.Do(func() {
		tmp, err := os.CreateTemp("", "faster_whisper_*.py")
		if err != nil {
			f.scriptErr = fmt.Errorf("create helper script: %w", err)
			return
		}
		defer tmp.Close()
		if _, err := tmp.Write(fasterWhisperScript); err != nil {
			f.scriptErr = fmt.Errorf("write helper script: %w", err)
			return
		}
		f.scriptPath = tmp.Name()
	})
	return f.scriptPath, f.scriptErr
}

func (f *implFasterWhisper) baseArgs(script string, model Model) []string {
	return []string{
		script,
		"--model", string(model),
		"--device", f.cfg.Device,
		"--compute-type", f.cfg.ComputeType,
	}
}

func (f *implFasterWhisper) Load(ctx context.Context) error {
	script, err := f.script()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	m, err := ParseModel(f.cfg.Model)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	args := append(f.baseArgs(script, m), "--check")
	if _, err := f.executor.Execute(ctx, f.cfg.Python, args...); err != nil {
		return fmt.Errorf("%w: faster-whisper %s: %v", ErrModelLoad, m, err)
	}

	f.logger.Info(ctx, "faster-whisper ready: model=%s device=%s compute=%s", m, f.cfg.Device, f.cfg.ComputeType)
	return nil
}

type fasterWhisperOut struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Segments            []struct {
		Start      float64 `json:"start"`
		End        float64 `json:"end"`
		Text       string  `json:"text"`
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
}

func (f *implFasterWhisper) Transcribe(ctx context.Context, req Request) (*Result, error) {
	script, err := f.script()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	model := req.Model
	if model == "" {
		model = Model(f.cfg.Model)
	}
	if _, err := ParseModel(string(model)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	args := append(f.baseArgs(script, model),
		"--audio", req.AudioPath,
		"--beam-size", strconv.Itoa(f.cfg.BeamSize),
		"--temperature", strconv.FormatFloat(f.cfg.Temperature, 'f', -1, 64),
	)
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}

	out, err := f.executor.Execute(ctx, f.cfg.Python, args...)
	if err != nil {
		if executor.ExitCode(err) == exitModelLoad {
			return nil, fmt.Errorf("%w: faster-whisper %s: %v", ErrModelLoad, model, err)
		}
		return nil, fmt.Errorf("faster-whisper transcribe: %w", err)
	}

	var parsed fasterWhisperOut
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("parse helper output: %w", err)
	}

	f.logger.Debug(ctx, "Detected language '%s' with probability %f", parsed.Language, parsed.LanguageProbability)

	res := &Result{
		Language:            parsed.Language,
		LanguageProbability: parsed.LanguageProbability,
	}
	for _, s := range parsed.Segments {
		res.Utterances = append(res.Utterances, Utterance{
			Start:      seconds(s.Start),
			End:        seconds(s.End),
			Text:       s.Text,
			Confidence: math.Exp(s.AvgLogprob),
		})
	}
	return res, nil
}
