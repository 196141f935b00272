package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/shirou/gopsutil/v4/mem"
)

const usage = `Usage: pipeline [flags] <command> [args]

Commands:
  run <path-or-url>...     process audio files or URLs one by one
  batch <dir|urls.txt>     process every audio file in dir or every URL in a list
  summarize <file.txt>...  summarize text files concurrently
  evaluate <pairs.csv>...  score generated summaries against references (csv file or dir)
  watch                    process files dropped into paths.input

Flags:
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	envFile := flag.String("env", ".env", "optional dotenv file with API keys")
	mode := flag.String("mode", "", "segmentation mode override: fixed or silence")
	model := flag.String("model", "", "whisper model override")
	translate := flag.Bool("translate", false, "translate the summary to translation.target_lang")
	evaluate := flag.Bool("evaluate", false, "score the summary against the transcript")
	existing := flag.Bool("existing", false, "watch: also process files already in paths.input")
	refCol := flag.String("ref-col", "reference", "evaluate: csv column holding reference texts")
	genCol := flag.String("gen-col", "summary", "evaluate: csv column holding generated summaries")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Create context with cancellation on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio Digest Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		log.Info(ctx, "Memory: %.1f GB total, %.1f GB available",
			float64(vm.Total)/(1<<30), float64(vm.Available)/(1<<30))
	}
	log.Info(ctx, "Transcription: %s (%s), summarization: %s",
		cfg.Transcription.Engine, cfg.Transcription.Model, cfg.Summarization.Engine)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	if *mode != "" {
		cfg.Segmentation.Mode = *mode
	}
	if *model != "" {
		cfg.Transcription.Model = *model
	}
	if *translate {
		cfg.Translation.Enabled = true
	}
	if *evaluate {
		cfg.Evaluation.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		log.Error(ctx, "Invalid flags: %v", err)
		os.Exit(1)
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.close(ctx)
	a.includeExisting = *existing
	a.refCol, a.genCol = *refCol, *genCol

	args := flag.Args()[1:]
	switch cmd := flag.Arg(0); cmd {
	case "run":
		err = a.run(ctx, args)
	case "batch":
		err = a.batch(ctx, args)
	case "summarize":
		err = a.summarize(ctx, args)
	case "evaluate":
		err = a.evaluate(ctx, args)
	case "watch":
		err = a.watch(ctx)
	default:
		log.Error(ctx, "Unknown command %q", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%v", err)
		a.close(ctx)
		os.Exit(1)
	}
	log.Info(ctx, "Audio Digest Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
	}
	if cfg.Paths.Temp != "" {
		dirs = append(dirs, cfg.Paths.Temp)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
