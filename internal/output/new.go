package output

import "github.com/nguyentantai21042004/audio-digest/internal/logger"

type implWriter struct {
	dir    string
	logger logger.Logger
}

// New creates a Writer rooted at dir.
func New(dir string, log logger.Logger) Writer {
	return &implWriter{
		dir:    dir,
		logger: log,
	}
}
