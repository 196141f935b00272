package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// Audio extensions picked up from the drop folder.
var AudioExtensions = []string{".wav", ".mp3", ".m4a", ".ogg", ".flac", ".webm"}

// URLListExtension marks a file holding one media URL per line.
const URLListExtension = ".txt"
