package audio

import (
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

type implSegmenter struct {
	chunkLength time.Duration
	silence     SilenceConfig
	logger      logger.Logger
}

// NewSegmenter creates a Segmenter from the segmentation config.
func NewSegmenter(cfg config.SegmentationConfig, log logger.Logger) Segmenter {
	s := &implSegmenter{
		chunkLength: cfg.ChunkLength,
		silence: SilenceConfig{
			MinSilence:  cfg.MinSilence,
			ThresholdDB: cfg.ThresholdDB,
			KeepSilence: cfg.KeepSilence,
		},
		logger: log,
	}
	if s.chunkLength <= 0 {
		s.chunkLength = 30 * time.Second
	}
	return s
}

type implNormalizer struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewNormalizer creates an ffmpeg-backed Normalizer.
func NewNormalizer(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
