// Package progress renders pipeline events as terminal progress bars.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

// Display is a pipeline.Observer keeping one bar per active request.
type Display struct {
	w io.Writer

	mu   sync.Mutex
	bars map[string]*progressbar.ProgressBar
}

// New creates a Display writing to w.
func New(w io.Writer) *Display {
	return &Display{w: w, bars: make(map[string]*progressbar.ProgressBar)}
}

func (d *Display) OnEvent(e pipeline.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bar := d.bar(e.RequestID)
	label := shortID(e.RequestID)

	switch {
	case e.Segment > 0:
		if bar.GetMax() != e.Total {
			bar.ChangeMax(e.Total)
		}
		bar.Describe(fmt.Sprintf("[cyan]%s[reset] transcribing %d/%d", label, e.Segment, e.Total))
		_ = bar.Set(e.Segment)

	case e.State == pipeline.StateDone:
		bar.Describe(fmt.Sprintf("[green]%s[reset] done", label))
		_ = bar.Finish()
		fmt.Fprintln(d.w)
		delete(d.bars, e.RequestID)

	case e.State == pipeline.StateFailed:
		bar.Describe(fmt.Sprintf("[red]%s[reset] failed: %v", label, e.Err))
		_ = bar.Exit()
		fmt.Fprintln(d.w)
		delete(d.bars, e.RequestID)

	default:
		bar.Describe(fmt.Sprintf("[cyan]%s[reset] %s", label, e.State))
		_ = bar.RenderBlank()
	}
}

// Active returns the number of requests still rendering.
func (d *Display) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bars)
}

func (d *Display) bar(id string) *progressbar.ProgressBar {
	if bar, ok := d.bars[id]; ok {
		return bar
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(d.w),
		progressbar.OptionSetDescription("Starting..."),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	d.bars[id] = bar
	return bar
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
