package lifecycle_test

import (
	"testing"

	"github.com/goliatone/go-publisher/lifecycle"
)

func TestTyped_PublicationFlow(t *testing.T) {
	draft := lifecycle.NewDraft()
	draft.AddText("I ate a salad for lunch today")

	pending := draft.RequestReview()
	if pending == nil {
		t.Fatal("expected pending review post")
	}

	published := pending.Approve()
	if published == nil {
		t.Fatal("expected published post")
	}

	if got := published.Content(); got != "I ate a salad for lunch today" {
		t.Fatalf("published content mismatch: %q", got)
	}
}

func TestTyped_RejectReturnsContentToDraft(t *testing.T) {
	draft := lifecycle.NewDraft()
	draft.AddText("rough cut")

	pending := draft.RequestReview()
	reworked := pending.Reject()
	if reworked == nil {
		t.Fatal("expected draft post after reject")
	}

	reworked.AddText(", polished")
	published := reworked.RequestReview().Approve()

	if got := published.Content(); got != "rough cut, polished" {
		t.Fatalf("content after rework mismatch: %q", got)
	}
}

func TestTyped_ConsumedHandlesAreInert(t *testing.T) {
	draft := lifecycle.NewDraft()
	draft.AddText("body")

	first := draft.RequestReview()
	if first == nil {
		t.Fatal("expected pending review post")
	}

	// The draft handle has been consumed: later appends are dropped and a
	// second transition yields nothing.
	draft.AddText(" extra")
	if second := draft.RequestReview(); second != nil {
		t.Fatal("consumed draft produced a second pending review post")
	}

	published := first.Approve()
	if again := first.Approve(); again != nil {
		t.Fatal("consumed pending review post approved twice")
	}
	if rejected := first.Reject(); rejected != nil {
		t.Fatal("consumed pending review post rejected after approval")
	}

	if got := published.Content(); got != "body" {
		t.Fatalf("published content mismatch: %q", got)
	}
}

// The phase restrictions themselves are compile-time properties: DraftPost
// and PendingReviewPost deliberately have no Content method, and
// PublishedPost has no transitions. This test pins those surfaces via
// interface satisfaction so an accidental method addition fails the build
// visibly rather than silently widening a phase.
func TestTyped_PhaseSurfaces(t *testing.T) {
	type contentReader interface{ Content() string }
	type reviewable interface{ RequestReview() *lifecycle.PendingReviewPost }

	var draft any = lifecycle.NewDraft()
	if _, ok := draft.(contentReader); ok {
		t.Fatal("draft posts must not expose Content")
	}
	if _, ok := draft.(reviewable); !ok {
		t.Fatal("draft posts must expose RequestReview")
	}

	var pending any = lifecycle.NewDraft().RequestReview()
	if _, ok := pending.(contentReader); ok {
		t.Fatal("pending review posts must not expose Content")
	}
	if _, ok := pending.(reviewable); ok {
		t.Fatal("pending review posts must not re-enter review")
	}

	var published any = lifecycle.NewDraft().RequestReview().Approve()
	if _, ok := published.(contentReader); !ok {
		t.Fatal("published posts must expose Content")
	}
	if _, ok := published.(reviewable); ok {
		t.Fatal("published posts must not re-enter review")
	}
}
