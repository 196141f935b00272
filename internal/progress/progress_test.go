package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/audio-digest/internal/pipeline"
)

func TestDisplayLifecycle(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)

	d.OnEvent(pipeline.Event{RequestID: "req-a", State: pipeline.StateSegmenting})
	d.OnEvent(pipeline.Event{RequestID: "req-b", State: pipeline.StateSegmenting})
	if got := d.Active(); got != 2 {
		t.Fatalf("Active() = %d, want 2", got)
	}

	d.OnEvent(pipeline.Event{RequestID: "req-a", State: pipeline.StateTranscribing, Segment: 1, Total: 3})
	if got := d.bars["req-a"].GetMax(); got != 3 {
		t.Errorf("max = %d, want 3", got)
	}

	d.OnEvent(pipeline.Event{RequestID: "req-a", State: pipeline.StateDone})
	d.OnEvent(pipeline.Event{RequestID: "req-b", State: pipeline.StateFailed, Err: errors.New("boom")})
	if got := d.Active(); got != 0 {
		t.Errorf("Active() = %d, want 0", got)
	}
	if buf.Len() == 0 {
		t.Error("nothing rendered")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q", got)
	}
}
