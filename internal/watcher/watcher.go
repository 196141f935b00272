package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	opts      Options
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start monitors the input directory for new audio files and URL lists and
// hands each one to the handler. It returns after ctx is done and every
// running handler has finished.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s, URL lists: %s", strings.Join(AudioExtensions, ", "), URLListExtension)

	if w.opts.IncludeExisting {
		if err := w.dispatchExisting(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsSupported(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New input detected: %s", event.Name)

			select {
			case <-time.After(w.opts.Settle):
			case <-ctx.Done():
				return w.drain(ctx)
			}
			if !w.dispatch(ctx, event.Name) {
				return w.drain(ctx)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) dispatchExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		w.logger.Info(ctx, "Existing input found: %s", e.Name())
		if !w.dispatch(ctx, filepath.Join(w.inputDir, e.Name())) {
			return w.drain(ctx)
		}
	}
	return nil
}

// dispatch runs the handler for path once a slot is free. It reports false
// when ctx ended before a slot was acquired.
func (w *implWatcher) dispatch(ctx context.Context, path string) bool {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return false
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return true
}

func (w *implWatcher) drain(ctx context.Context) error {
	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "File watcher stopped")
	return ctx.Err()
}

// IsSupported reports whether path is an audio file or a URL list.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == URLListExtension || slices.Contains(AudioExtensions, ext)
}

// IsURLList reports whether path holds URLs rather than audio.
func IsURLList(path string) bool {
	return strings.EqualFold(filepath.Ext(path), URLListExtension)
}
