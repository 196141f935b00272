package executor

import "context"

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory, empty for the current one
	Env  []string // extra KEY=VALUE pairs appended to the parent environment
}

// Executor runs external tools such as ffmpeg, yt-dlp and whisper-cli.
type Executor interface {
	// Execute runs name with args and returns captured stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Run executes cmd and returns captured stdout.
	Run(ctx context.Context, cmd Command) (string, error)
	// LookPath reports whether a binary is resolvable.
	LookPath(name string) (string, error)
}
