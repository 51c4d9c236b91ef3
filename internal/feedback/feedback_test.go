package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mwelte/undo/internal/catalog"
)

func TestRuleProviderShortAnswer(t *testing.T) {
	p := NewRuleProvider()
	out, err := p.Generate(context.Background(), Request{Answer: "fine"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "two more sentences") {
		t.Errorf("short answer should get an expansion nudge:\n%s", out)
	}
	if !strings.Contains(out, "time window") {
		t.Errorf("answer without a time anchor should get a scheduling nudge:\n%s", out)
	}
}

func TestRuleProviderTimeAnchorDetected(t *testing.T) {
	p := NewRuleProvider()
	out, err := p.Generate(context.Background(), Request{
		Answer: "I will take a real break tomorrow and call my sister before lunch, because I keep postponing it.",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(out, "time window") {
		t.Errorf("time-anchored answer should not get the scheduling nudge:\n%s", out)
	}
	if strings.Contains(out, "two more sentences") {
		t.Errorf("long answer should not get the expansion nudge:\n%s", out)
	}
}

func TestRuleProviderUsesQuestionTip(t *testing.T) {
	p := NewRuleProvider()
	out, err := p.Generate(context.Background(), Request{
		Answer:   "fine",
		Question: &catalog.Question{Tips: []string{"Write one sentence by hand."}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "Write one sentence by hand.") {
		t.Errorf("feedback should carry the question's first tip:\n%s", out)
	}
}

func TestRuleProviderWeavesMotiveAndOutlook(t *testing.T) {
	p := NewRuleProvider()
	out, err := p.Generate(context.Background(), Request{
		Answer:  "fine",
		Motive:  "calm",
		Outlook: "More focus",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "why shines through") {
		t.Errorf("motive hint missing:\n%s", out)
	}
	if !strings.Contains(out, "More focus") {
		t.Errorf("outlook missing:\n%s", out)
	}
}

// flakyProvider fails a fixed number of times before succeeding.
type flakyProvider struct {
	failures int
	calls    int
	err      error
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Generate(_ context.Context, _ Request) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Microsecond,
		MaxWait:     time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	inner := &flakyProvider{failures: 2, err: &ErrUnavailable{}}
	p := WithRetry(inner, fastRetry(3))

	out, err := p.Generate(context.Background(), Request{Answer: "x"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" || inner.calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", out, inner.calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: &ErrUnavailable{}}
	p := WithRetry(inner, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{Answer: "x"})
	var unavail *ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryDoesNotRetryEmptyResponse(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: &ErrEmptyResponse{}}
	p := WithRetry(inner, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{Answer: "x"})
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("want ErrEmptyResponse, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestFallbackServesRulesOnFailure(t *testing.T) {
	primary := &flakyProvider{failures: 10, err: &ErrUnavailable{}}
	p := WithFallback(primary, NewRuleProvider())

	out, err := p.Generate(context.Background(), Request{Answer: "fine"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "Impulse:") {
		t.Errorf("fallback output missing impulse line:\n%s", out)
	}
}
