package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

// Options tune a Watcher. Zero values pick defaults.
type Options struct {
	// MaxConcurrent bounds handler calls in flight (default 2).
	MaxConcurrent int
	// Settle is the delay between a create event and the handler call,
	// giving the writer time to finish (default 500ms).
	Settle time.Duration
	// IncludeExisting dispatches files already in the directory on Start.
	IncludeExisting bool
}

// New creates a Watcher on dir that passes supported files to handler.
func New(dir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}

	return &implWatcher{
		inputDir:  dir,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		opts:      opts,
		semaphore: make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
