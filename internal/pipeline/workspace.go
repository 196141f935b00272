package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

// workspace is the per-request temp directory holding downloaded,
// normalized and chunk audio. It is removed once, whatever the outcome.
type workspace struct {
	dir  string
	once sync.Once
}

func (p *implPipeline) newWorkspace() (*workspace, error) {
	base := p.cfg.Paths.Temp
	if base != "" {
		if err := os.MkdirAll(base, 0755); err != nil {
			return nil, fmt.Errorf("create temp root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(base, "digest-*")
	if err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

// release removes the workspace, logs warning if fails
func (w *workspace) release(ctx context.Context, log logger.Logger) {
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			log.Warn(ctx, "Failed to cleanup workspace %s: %v", w.dir, err)
		} else {
			log.Debug(ctx, "Cleaned up workspace: %s", w.dir)
		}
	})
}
