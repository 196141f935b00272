package config

import (
	"fmt"
	"time"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Segmentation  SegmentationConfig  `yaml:"segmentation"`
	Summarization SummarizationConfig `yaml:"summarization"`
	Translation   TranslationConfig   `yaml:"translation"`
	Evaluation    EvaluationConfig    `yaml:"evaluation"`
	Download      DownloadConfig      `yaml:"download"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	HuggingFace   HuggingFaceConfig   `yaml:"huggingface"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
}

type TranscriptionConfig struct {
	Engine      string  `yaml:"engine"` // whispercpp | fasterwhisper | openai
	Model       string  `yaml:"model"`  // tiny ... large, turbo
	Language    string  `yaml:"language"`
	BinaryPath  string  `yaml:"binary_path"` // whisper.cpp CLI
	ModelDir    string  `yaml:"model_dir"`   // directory holding ggml-<model>.bin
	Threads     int     `yaml:"threads"`
	Python      string  `yaml:"python"` // interpreter for the faster-whisper helper
	Device      string  `yaml:"device"`
	ComputeType string  `yaml:"compute_type"`
	BeamSize    int     `yaml:"beam_size"`
	Temperature float64 `yaml:"temperature"`
}

type SegmentationConfig struct {
	Mode        string        `yaml:"mode"` // fixed | silence
	ChunkLength time.Duration `yaml:"chunk_length"`
	MinSilence  time.Duration `yaml:"min_silence"`
	ThresholdDB float64       `yaml:"silence_threshold_db"`
	KeepSilence time.Duration `yaml:"keep_silence"`
}

type SummarizationConfig struct {
	Engine      string  `yaml:"engine"` // gemini | huggingface
	Model       string  `yaml:"model"`
	MaxScale    float64 `yaml:"max_scale"`
	MinScale    float64 `yaml:"min_scale"`
	MaxFloor    int     `yaml:"max_floor"`
	MaxCeiling  int     `yaml:"max_ceiling"`
	MinFloor    int     `yaml:"min_floor"`
	MinCeiling  int     `yaml:"min_ceiling"`
	ChunkChars  int     `yaml:"chunk_chars"`
	OnError     string  `yaml:"on_error"` // substitute | fail
	Concurrency int     `yaml:"batch_concurrency"`
}

type TranslationConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Engine     string `yaml:"engine"` // huggingface | gemini
	TargetLang string `yaml:"target_lang"`
}

type EvaluationConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Metrics          []string `yaml:"metrics"`  // rouge1 rouge2 rougeL meteor embedding
	Mismatch         string   `yaml:"mismatch"` // truncate | error
	BootstrapSamples int      `yaml:"bootstrap_samples"`
	Seed             int64    `yaml:"seed"`
	EmbeddingModel   string   `yaml:"embedding_model"`
}

type DownloadConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	AudioCodec string `yaml:"audio_codec"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	BaseURL string   `yaml:"base_url"`
	APIKeys []string `yaml:"-"`
}

type HuggingFaceConfig struct {
	BaseURL          string        `yaml:"base_url"`
	TranslationModel string        `yaml:"translation_model"` // pattern with {src} and {tgt}
	Timeout          time.Duration `yaml:"timeout"`
	Token            string        `yaml:"-"`
}

type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

// Validate fills unset fields with defaults and rejects invalid values.
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must be > 0, got %d", c.Performance.MaxConcurrent)
	}

	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateSummarization(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateEvaluation(); err != nil {
		return err
	}

	if c.Download.BinaryPath == "" {
		c.Download.BinaryPath = "yt-dlp"
	}
	if c.Download.AudioFormat == "" {
		c.Download.AudioFormat = "wav"
	}
	if c.Download.AudioQuality == "" {
		c.Download.AudioQuality = "192K"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "pcm_s16le"
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.HuggingFace.BaseURL == "" {
		c.HuggingFace.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if c.HuggingFace.TranslationModel == "" {
		c.HuggingFace.TranslationModel = "Helsinki-NLP/opus-mt-{src}-{tgt}"
	}
	if c.HuggingFace.Timeout == 0 {
		c.HuggingFace.Timeout = 5 * time.Minute
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}

	switch c.Logging.Level {
	case "":
		c.Logging.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

func (c *Config) validateTranscription() error {
	t := &c.Transcription
	if t.Engine == "" {
		t.Engine = "whispercpp"
	}
	if t.Model == "" {
		t.Model = "medium"
	}
	if t.BeamSize == 0 {
		t.BeamSize = 5
	}
	if t.Temperature == 0 {
		t.Temperature = 0.2
	}

	switch t.Engine {
	case "whispercpp":
		if t.BinaryPath == "" {
			t.BinaryPath = "whisper-cli"
		}
		if t.ModelDir == "" {
			return fmt.Errorf("transcription.model_dir is required for whispercpp")
		}
		if t.Threads == 0 {
			t.Threads = 8
		}
	case "fasterwhisper":
		if t.Python == "" {
			t.Python = "python3"
		}
		if t.Device == "" {
			t.Device = "cpu"
		}
		if t.ComputeType == "" {
			t.ComputeType = "int8"
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("transcription.engine openai requires OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("transcription.engine must be whispercpp, fasterwhisper, or openai, got %q", t.Engine)
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	s := &c.Segmentation
	switch s.Mode {
	case "":
		s.Mode = "fixed"
	case "fixed", "silence":
	default:
		return fmt.Errorf("segmentation.mode must be \"fixed\" or \"silence\", got %q", s.Mode)
	}
	if s.ChunkLength == 0 {
		s.ChunkLength = 30 * time.Second
	}
	if s.ChunkLength < 0 {
		return fmt.Errorf("segmentation.chunk_length must be > 0")
	}
	if s.MinSilence == 0 {
		s.MinSilence = 500 * time.Millisecond
	}
	if s.ThresholdDB == 0 {
		s.ThresholdDB = -40
	}
	if s.ThresholdDB > 0 {
		return fmt.Errorf("segmentation.silence_threshold_db must be <= 0, got %v", s.ThresholdDB)
	}
	if s.KeepSilence == 0 {
		s.KeepSilence = 200 * time.Millisecond
	}
	return nil
}

func (c *Config) validateSummarization() error {
	s := &c.Summarization
	if s.Engine == "" {
		s.Engine = "huggingface"
	}
	switch s.Engine {
	case "huggingface":
		if s.Model == "" {
			s.Model = "google/pegasus-xsum"
		}
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("summarization.engine gemini requires GEMINI_API_KEYS")
		}
	default:
		return fmt.Errorf("summarization.engine must be huggingface or gemini, got %q", s.Engine)
	}

	if s.MaxScale == 0 {
		s.MaxScale = 0.5
	}
	if s.MinScale == 0 {
		s.MinScale = 0.1
	}
	if s.MaxFloor == 0 {
		s.MaxFloor = 50
	}
	if s.MaxCeiling == 0 {
		s.MaxCeiling = 200
	}
	if s.MinFloor == 0 {
		s.MinFloor = 20
	}
	if s.MinCeiling == 0 {
		s.MinCeiling = 50
	}
	if s.ChunkChars == 0 && s.Engine == "huggingface" {
		s.ChunkChars = 3000
	}
	if s.Concurrency == 0 {
		s.Concurrency = 4
	}
	switch s.OnError {
	case "":
		s.OnError = "substitute"
	case "substitute", "fail":
	default:
		return fmt.Errorf("summarization.on_error must be \"substitute\" or \"fail\", got %q", s.OnError)
	}
	return nil
}

func (c *Config) validateTranslation() error {
	t := &c.Translation
	if !t.Enabled {
		return nil
	}
	if t.Engine == "" {
		t.Engine = "huggingface"
	}
	if t.TargetLang == "" {
		return fmt.Errorf("translation.target_lang is required when translation is enabled")
	}
	switch t.Engine {
	case "huggingface":
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("translation.engine gemini requires GEMINI_API_KEYS")
		}
	default:
		return fmt.Errorf("translation.engine must be huggingface or gemini, got %q", t.Engine)
	}
	return nil
}

func (c *Config) validateEvaluation() error {
	e := &c.Evaluation
	if len(e.Metrics) == 0 {
		e.Metrics = []string{"rouge1", "rouge2", "rougeL"}
	}
	for _, m := range e.Metrics {
		switch m {
		case "rouge1", "rouge2", "rougeL", "meteor":
		case "embedding":
			if e.Enabled && len(c.Gemini.APIKeys) == 0 {
				return fmt.Errorf("evaluation metric embedding requires GEMINI_API_KEYS")
			}
		default:
			return fmt.Errorf("evaluation.metrics: unknown metric %q", m)
		}
	}
	switch e.Mismatch {
	case "":
		e.Mismatch = "truncate"
	case "truncate", "error":
	default:
		return fmt.Errorf("evaluation.mismatch must be \"truncate\" or \"error\", got %q", e.Mismatch)
	}
	if e.BootstrapSamples == 0 {
		e.BootstrapSamples = 1000
	}
	if e.EmbeddingModel == "" {
		e.EmbeddingModel = "text-embedding-004"
	}
	return nil
}
