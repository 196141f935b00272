package downloader

import (
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

type implDownloader struct {
	cfg      config.DownloadConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a yt-dlp backed Downloader.
func New(cfg config.DownloadConfig, exec executor.Executor, log logger.Logger) Downloader {
	return &implDownloader{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
