package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/huggingface"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

// fakeEngine echoes a prefix of its input and records concurrency.
type fakeEngine struct {
	delay   func(text string) time.Duration
	fail    map[string]bool
	mu      sync.Mutex
	budgets []Budget

	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Summarize(ctx context.Context, text string, b Budget) (string, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.budgets = append(f.budgets, b)
	f.mu.Unlock()

	if f.delay != nil {
		time.Sleep(f.delay(text))
	}
	if f.fail[text] {
		return "", errors.New("model exploded")
	}
	return "sum(" + text + ")", nil
}

func testConfig() config.SummarizationConfig {
	p := DefaultPolicy()
	return config.SummarizationConfig{
		MaxScale: p.MaxScale, MinScale: p.MinScale,
		MaxFloor: p.MaxFloor, MaxCeiling: p.MaxCeiling,
		MinFloor: p.MinFloor, MinCeiling: p.MinCeiling,
	}
}

func newTestSummarizer(t *testing.T, cfg config.SummarizationConfig, e Engine) Summarizer {
	t.Helper()
	s, err := New(cfg, e, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNewRejectsInvalidPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.MaxScale = 0
	if _, err := New(cfg, &fakeEngine{}, logger.Nop()); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("New() error = %v, want ErrInvalidPolicy", err)
	}
}

func TestSummarize(t *testing.T) {
	e := &fakeEngine{}
	s := newTestSummarizer(t, testConfig(), e)

	text := strings.Repeat("word ", 60)
	got := s.Summarize(context.Background(), text)

	if got.Err != nil {
		t.Fatalf("Err = %v", got.Err)
	}
	if got.Text != strings.TrimSpace("sum("+text+")") {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Source != text || got.Engine != "fake" {
		t.Errorf("Source/Engine = %q/%q", got.Source, got.Engine)
	}
	if got.Budget != (Budget{MaxLength: 150, MinLength: 20}) {
		t.Errorf("Budget = %+v", got.Budget)
	}
	if len(e.budgets) != 1 || e.budgets[0] != got.Budget {
		t.Errorf("engine budgets = %+v", e.budgets)
	}
}

func TestSummarizeEmptySkipsEngine(t *testing.T) {
	e := &fakeEngine{}
	s := newTestSummarizer(t, testConfig(), e)

	got := s.Summarize(context.Background(), "")
	if got.Err != nil || got.Text != "" {
		t.Errorf("Summarize(\"\") = %+v", got)
	}
	if got.Budget != (Budget{MaxLength: 50, MinLength: 20}) {
		t.Errorf("Budget = %+v", got.Budget)
	}
	if len(e.budgets) != 0 {
		t.Errorf("engine called %d times", len(e.budgets))
	}
}

func TestSummarizeChunksLongText(t *testing.T) {
	e := &fakeEngine{}
	cfg := testConfig()
	cfg.ChunkChars = 40
	s := newTestSummarizer(t, cfg, e)

	text := "The first sentence is here. The second sentence is here. The third one ends it."
	got := s.Summarize(context.Background(), text)

	if got.Err != nil {
		t.Fatalf("Err = %v", got.Err)
	}
	want := "sum(The first sentence is here.) sum(The second sentence is here.) sum(The third one ends it.)"
	if got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
	if len(got.Chunks) != 3 {
		t.Fatalf("Chunks = %+v, want 3 budgets", got.Chunks)
	}
	if got.Budget != (Budget{}) {
		t.Errorf("Budget = %+v, want zero for a chunked text", got.Budget)
	}
	// Chunks must record exactly what the engine was asked for.
	e.mu.Lock()
	sent := append([]Budget(nil), e.budgets...)
	e.mu.Unlock()
	if diff := cmp.Diff(sent, got.Chunks); diff != "" {
		t.Errorf("Chunks differ from budgets sent (-sent +got):\n%s", diff)
	}
}

func TestSummarizeEngineError(t *testing.T) {
	e := &fakeEngine{fail: map[string]bool{"boom": true}}
	s := newTestSummarizer(t, testConfig(), e)

	got := s.Summarize(context.Background(), "boom")

	var engErr *EngineError
	if !errors.As(got.Err, &engErr) {
		t.Fatalf("Err = %v, want EngineError", got.Err)
	}
	if engErr.Engine != "fake" || !strings.Contains(engErr.Error(), "model exploded") {
		t.Errorf("EngineError = %v", engErr)
	}
	if got.Text != "" {
		t.Errorf("Text = %q, want empty", got.Text)
	}
}

func TestBatchPreservesOrder(t *testing.T) {
	texts := []string{"t0", "t1", "t2", "t3", "t4"}
	e := &fakeEngine{
		// Earlier texts take longer so completion order is reversed.
		delay: func(text string) time.Duration {
			return time.Duration(5-int(text[1]-'0')) * 10 * time.Millisecond
		},
	}
	s := newTestSummarizer(t, testConfig(), e)

	got := s.Batch(context.Background(), texts, 2)

	if len(got) != len(texts) {
		t.Fatalf("got %d results, want %d", len(got), len(texts))
	}
	for i, r := range got {
		if r.Err != nil {
			t.Errorf("result %d error = %v", i, r.Err)
		}
		if want := fmt.Sprintf("sum(%s)", texts[i]); r.Text != want {
			t.Errorf("result %d = %q, want %q", i, r.Text, want)
		}
	}
	if p := e.peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestBatchKeepsFailuresInPlace(t *testing.T) {
	e := &fakeEngine{fail: map[string]bool{"b": true}}
	s := newTestSummarizer(t, testConfig(), e)

	got := s.Batch(context.Background(), []string{"a", "b", "c"}, 4)

	if got[0].Err != nil || got[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", got[0].Err, got[2].Err)
	}
	if got[1].Err == nil || got[1].Source != "b" {
		t.Errorf("result 1 = %+v, want failure for b", got[1])
	}
}

func TestBatchCancelled(t *testing.T) {
	s := newTestSummarizer(t, testConfig(), &fakeEngine{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := s.Batch(ctx, []string{"a", "b"}, 1)
	for i, r := range got {
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v", i, r.Err)
		}
		if r.Source != []string{"a", "b"}[i] {
			t.Errorf("result %d source = %q", i, r.Source)
		}
	}
}

func TestHuggingFaceEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/google/pegasus-xsum" {
			http.NotFound(w, r)
			return
		}
		var req hfSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Parameters.MaxLength != 60 || req.Parameters.MinLength != 20 || req.Parameters.DoSample {
			t.Errorf("parameters = %+v", req.Parameters)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"summary_text": "short version"}})
	}))
	defer srv.Close()

	e := NewHuggingFace(huggingface.New(srv.URL, "", time.Second), "google/pegasus-xsum")
	got, err := e.Summarize(context.Background(), "long text", Budget{MaxLength: 60, MinLength: 20})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "short version" {
		t.Errorf("Summarize() = %q", got)
	}
}

type fakeGemini struct {
	prompt string
	err    error
}

func (f *fakeGemini) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return "gemini summary", f.err
}

func (f *fakeGemini) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	return nil, nil
}

func TestGeminiEngine(t *testing.T) {
	g := &fakeGemini{}
	e := NewGemini(g)

	got, err := e.Summarize(context.Background(), "the transcript", Budget{MaxLength: 120, MinLength: 30})
	if err != nil || got != "gemini summary" {
		t.Fatalf("Summarize() = %q, %v", got, err)
	}
	if !strings.Contains(g.prompt, "Between 30 and 120 characters") || !strings.Contains(g.prompt, "the transcript") {
		t.Errorf("prompt = %q", g.prompt)
	}
}

func TestNewEngine(t *testing.T) {
	hf := huggingface.New("http://localhost", "", time.Second)

	cfg := &config.Config{Summarization: config.SummarizationConfig{Engine: "huggingface", Model: "m"}}
	if e, err := NewEngine(cfg, nil, hf); err != nil || e.Name() != "huggingface" {
		t.Errorf("NewEngine(huggingface) = %v, %v", e, err)
	}

	cfg.Summarization.Engine = "gemini"
	if _, err := NewEngine(cfg, nil, hf); err == nil {
		t.Error("NewEngine(gemini) without client should fail")
	}
	if e, err := NewEngine(cfg, &fakeGemini{}, hf); err != nil || e.Name() != "gemini" {
		t.Errorf("NewEngine(gemini) = %v, %v", e, err)
	}

	cfg.Summarization.Engine = "t5"
	if _, err := NewEngine(cfg, nil, hf); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("NewEngine(t5) error = %v, want ErrUnknownEngine", err)
	}
}
