// Package executortest provides an in-memory Executor for tests.
package executortest

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// Handler produces the result of one command.
type Handler func(ctx context.Context, c executor.Command) (string, error)

// Fake records every command it receives and answers through Handler.
type Fake struct {
	Handler Handler

	mu    sync.Mutex
	calls []executor.Command
}

// New returns a Fake answering with h. A nil h succeeds with empty output.
func New(h Handler) *Fake {
	return &Fake{Handler: h}
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.Run(ctx, executor.Command{Name: name, Args: args})
}

func (f *Fake) Run(ctx context.Context, c executor.Command) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(ctx, c)
}

func (f *Fake) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of the recorded commands.
func (f *Fake) Calls() []executor.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]executor.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// ArgAfter returns the argument following flag in c, or "".
func ArgAfter(c executor.Command, flag string) string {
	for i := 0; i+1 < len(c.Args); i++ {
		if c.Args[i] == flag {
			return c.Args[i+1]
		}
	}
	return ""
}
