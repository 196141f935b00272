package transcriber

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrModelLoad marks a failure to acquire the model or engine. It is
	// fatal for the whole request.
	ErrModelLoad = errors.New("model load failed")
	// ErrUnknownEngine is returned by New for an unregistered engine name.
	ErrUnknownEngine = errors.New("unknown transcription engine")
)

// Model identifies a Whisper model size.
type Model string

const (
	ModelTiny     Model = "tiny"
	ModelTinyEn   Model = "tiny.en"
	ModelBase     Model = "base"
	ModelBaseEn   Model = "base.en"
	ModelSmall    Model = "small"
	ModelSmallEn  Model = "small.en"
	ModelMedium   Model = "medium"
	ModelMediumEn Model = "medium.en"
	ModelLarge    Model = "large"
	ModelTurbo    Model = "turbo"
)

var models = []Model{
	ModelTiny, ModelTinyEn, ModelBase, ModelBaseEn, ModelSmall, ModelSmallEn,
	ModelMedium, ModelMediumEn, ModelLarge, ModelTurbo,
}

// ParseModel validates a model identifier.
func ParseModel(s string) (Model, error) {
	for _, m := range models {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown whisper model %q", s)
}

// Request is one transcription call for a single audio file.
type Request struct {
	AudioPath string
	Model     Model
	Language  string // empty means auto-detect
}

// Utterance is one recognized phrase. Start and End are relative to the
// beginning of the audio file in the Request.
type Utterance struct {
	Start      time.Duration
	End        time.Duration
	Text       string
	Confidence float64
}

// Result is what an Engine returns for one Request.
type Result struct {
	Utterances          []Utterance
	Language            string
	LanguageProbability float64
}

// Text joins utterance text without separators.
func (r *Result) Text() string {
	var n int
	for _, u := range r.Utterances {
		n += len(u.Text)
	}
	b := make([]byte, 0, n)
	for _, u := range r.Utterances {
		b = append(b, u.Text...)
	}
	return string(b)
}

// Engine wraps an external speech-to-text backend.
// Load returns an error wrapping ErrModelLoad when the backend cannot be
// used at all. Transcribe errors not wrapping ErrModelLoad affect only the
// audio in that Request.
type Engine interface {
	Name() string
	Load(ctx context.Context) error
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Close() error
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
