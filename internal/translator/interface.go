package translator

import (
	"context"
	"errors"
)

// ErrUnknownEngine is returned by New for an unregistered engine name.
var ErrUnknownEngine = errors.New("unknown translation engine")

// Engine translates one piece of text between two ISO 639-1 languages.
type Engine interface {
	Name() string
	Translate(ctx context.Context, text, src, tgt string) (string, error)
}

// Translator translates multi-line text line by line.
type Translator interface {
	Translate(ctx context.Context, text, src, tgt string) (string, error)
}
