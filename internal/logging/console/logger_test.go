package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-publisher/internal/logging"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestLogger_FormatsEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := NewProvider(Options{Writer: buf, TimeFunc: fixedClock})

	logger := provider.GetLogger("publisher.posts")
	logger.Info("post created", "post_id", "abc", "approvals", 2)

	got := strings.TrimRight(buf.String(), "\n")
	want := `2025-03-10T12:00:00Z INFO post created approvals=2 logger=publisher.posts post_id=abc`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\n got: %s", want, got)
	}
}

func TestLogger_MinLevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	min := LevelWarn
	provider := NewProvider(Options{Writer: buf, TimeFunc: fixedClock, MinLevel: &min})

	logger := provider.GetLogger("publisher")
	logger.Debug("skipped")
	logger.Info("also skipped")
	logger.Warn("kept")

	output := buf.String()
	if strings.Contains(output, "skipped") {
		t.Fatalf("expected entries below WARN to be dropped, got %q", output)
	}
	if !strings.Contains(output, "WARN kept") {
		t.Fatalf("expected WARN entry, got %q", output)
	}
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := NewProvider(Options{Writer: buf, TimeFunc: fixedClock})

	logger := logging.WithFields(provider.GetLogger("publisher"), map[string]any{
		"slug": "lunch",
	})
	logger.Info("published")

	if !strings.Contains(buf.String(), "slug=lunch") {
		t.Fatalf("expected slug field, got %q", buf.String())
	}
}

func TestLogger_ContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := NewProvider(Options{Writer: buf, TimeFunc: fixedClock})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"request_id": "req-1",
	})
	provider.GetLogger("publisher").WithContext(ctx).Info("handled")

	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("expected context field, got %q", buf.String())
	}
}

func TestLogger_QuotesValuesWithSpaces(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := NewProvider(Options{Writer: buf, TimeFunc: fixedClock})

	provider.GetLogger("publisher").Info("event", "title", "lunch notes")

	if !strings.Contains(buf.String(), `title="lunch notes"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}
