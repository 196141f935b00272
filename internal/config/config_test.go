package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Transcription: TranscriptionConfig{
			Engine:   "whispercpp",
			ModelDir: "models",
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing paths",
			mutate:  func(c *Config) { c.Paths = PathsConfig{} },
			wantErr: true,
		},
		{
			name:    "whispercpp without model dir",
			mutate:  func(c *Config) { c.Transcription.ModelDir = "" },
			wantErr: true,
		},
		{
			name:    "unknown transcription engine",
			mutate:  func(c *Config) { c.Transcription.Engine = "vosk" },
			wantErr: true,
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.Transcription.Engine = "openai" },
			wantErr: true,
		},
		{
			name: "openai with key",
			mutate: func(c *Config) {
				c.Transcription.Engine = "openai"
				c.OpenAI.APIKey = "sk-test"
			},
			wantErr: false,
		},
		{
			name:    "bad segmentation mode",
			mutate:  func(c *Config) { c.Segmentation.Mode = "vad" },
			wantErr: true,
		},
		{
			name:    "positive silence threshold",
			mutate:  func(c *Config) { c.Segmentation.ThresholdDB = 3 },
			wantErr: true,
		},
		{
			name:    "gemini summarizer without keys",
			mutate:  func(c *Config) { c.Summarization.Engine = "gemini" },
			wantErr: true,
		},
		{
			name:    "bad on_error",
			mutate:  func(c *Config) { c.Summarization.OnError = "ignore" },
			wantErr: true,
		},
		{
			name:    "translation without target",
			mutate:  func(c *Config) { c.Translation.Enabled = true },
			wantErr: true,
		},
		{
			name:    "unknown metric",
			mutate:  func(c *Config) { c.Evaluation.Metrics = []string{"bleu"} },
			wantErr: true,
		},
		{
			name:    "bad mismatch policy",
			mutate:  func(c *Config) { c.Evaluation.Mismatch = "pad" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Segmentation.Mode != "fixed" {
		t.Errorf("Segmentation.Mode = %q, want fixed", cfg.Segmentation.Mode)
	}
	if cfg.Segmentation.ChunkLength != 30*time.Second {
		t.Errorf("ChunkLength = %v, want 30s", cfg.Segmentation.ChunkLength)
	}
	if cfg.Segmentation.MinSilence != 500*time.Millisecond {
		t.Errorf("MinSilence = %v, want 500ms", cfg.Segmentation.MinSilence)
	}
	if cfg.Segmentation.ThresholdDB != -40 {
		t.Errorf("ThresholdDB = %v, want -40", cfg.Segmentation.ThresholdDB)
	}
	if cfg.Summarization.MaxScale != 0.5 || cfg.Summarization.MinScale != 0.1 {
		t.Errorf("scales = %v/%v, want 0.5/0.1", cfg.Summarization.MaxScale, cfg.Summarization.MinScale)
	}
	if cfg.Summarization.MaxFloor != 50 || cfg.Summarization.MaxCeiling != 200 {
		t.Errorf("max bounds = %d/%d, want 50/200", cfg.Summarization.MaxFloor, cfg.Summarization.MaxCeiling)
	}
	if cfg.Summarization.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Summarization.Concurrency)
	}
	if cfg.Summarization.OnError != "substitute" {
		t.Errorf("OnError = %q, want substitute", cfg.Summarization.OnError)
	}
	if cfg.Evaluation.Mismatch != "truncate" {
		t.Errorf("Mismatch = %q, want truncate", cfg.Evaluation.Mismatch)
	}
	if cfg.Transcription.BeamSize != 5 || cfg.Transcription.Temperature != 0.2 {
		t.Errorf("beam/temperature = %d/%v, want 5/0.2", cfg.Transcription.BeamSize, cfg.Transcription.Temperature)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvGeminiKeys, "k1, k2 ,")
	t.Setenv(EnvHFToken, "hf_test")

	content := `
transcription:
  engine: whispercpp
  model: small.en
  model_dir: "models"

segmentation:
  mode: silence
  min_silence: 700ms
  silence_threshold_db: -35
  keep_silence: 100ms

summarization:
  engine: gemini
  max_scale: 0.2
  min_scale: 0.25

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Transcription.Model != "small.en" {
		t.Errorf("Model = %v, want %v", cfg.Transcription.Model, "small.en")
	}
	if cfg.Segmentation.MinSilence != 700*time.Millisecond {
		t.Errorf("MinSilence = %v, want 700ms", cfg.Segmentation.MinSilence)
	}
	if cfg.Segmentation.KeepSilence != 100*time.Millisecond {
		t.Errorf("KeepSilence = %v, want 100ms", cfg.Segmentation.KeepSilence)
	}
	if cfg.Summarization.MaxScale != 0.2 {
		t.Errorf("MaxScale = %v, want 0.2", cfg.Summarization.MaxScale)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2]", cfg.Gemini.APIKeys)
	}
	if cfg.HuggingFace.Token != "hf_test" {
		t.Errorf("Token = %q, want hf_test", cfg.HuggingFace.Token)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("OPENAI_API_KEY=sk-from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "transcription:\n  engine: openai\npaths:\n  input: in\n  output: out\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// godotenv does not override existing variables; start clean and restore after.
	t.Setenv(EnvOpenAIKey, "")
	os.Unsetenv(EnvOpenAIKey)

	cfg, err := Load(cfgPath, filepath.Join(dir, "missing.env"), envPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-file" {
		t.Errorf("APIKey = %q, want sk-from-file", cfg.OpenAI.APIKey)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
