package lifecycle_test

import (
	"testing"

	"github.com/goliatone/go-publisher/lifecycle"
)

func TestPost_DraftContentIsHidden(t *testing.T) {
	post := lifecycle.New()
	post.AddText("first paragraph")
	post.AddText(" and a second one")

	if got := post.Content(); got != "" {
		t.Fatalf("draft content should be hidden, got %q", got)
	}
	if got := post.Phase(); got != lifecycle.PhaseDraft {
		t.Fatalf("expected draft phase, got %s", got)
	}
}

func TestPost_PublicationFlow(t *testing.T) {
	post := lifecycle.New()
	post.AddText("I ate a salad for lunch today")

	if got := post.Content(); got != "" {
		t.Fatalf("draft content should be hidden, got %q", got)
	}

	post.RequestReview()
	if got := post.Content(); got != "" {
		t.Fatalf("pending review content should be hidden, got %q", got)
	}
	if got := post.Phase(); got != lifecycle.PhasePendingReview {
		t.Fatalf("expected pending review phase, got %s", got)
	}

	post.Approve()
	if got := post.Content(); got != "I ate a salad for lunch today" {
		t.Fatalf("published content mismatch: %q", got)
	}
	if got := post.Phase(); got != lifecycle.PhasePublished {
		t.Fatalf("expected published phase, got %s", got)
	}
}

func TestPost_ContentPreservesAppendOrder(t *testing.T) {
	post := lifecycle.New()
	post.AddText("one ")
	post.AddText("two ")
	post.AddText("three")
	post.RequestReview()
	post.Approve()

	if got := post.Content(); got != "one two three" {
		t.Fatalf("expected appends in order, got %q", got)
	}
}

func TestPost_InvalidTransitionsAreNoOps(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*lifecycle.Post)
		event func(*lifecycle.Post)
		want  lifecycle.Phase
	}{
		{
			name:  "approve on draft keeps draft",
			setup: func(*lifecycle.Post) {},
			event: func(p *lifecycle.Post) { p.Approve() },
			want:  lifecycle.PhaseDraft,
		},
		{
			name:  "reject on draft keeps draft",
			setup: func(*lifecycle.Post) {},
			event: func(p *lifecycle.Post) { p.Reject() },
			want:  lifecycle.PhaseDraft,
		},
		{
			name:  "request review is idempotent",
			setup: func(p *lifecycle.Post) { p.RequestReview() },
			event: func(p *lifecycle.Post) { p.RequestReview() },
			want:  lifecycle.PhasePendingReview,
		},
		{
			name: "request review on published keeps published",
			setup: func(p *lifecycle.Post) {
				p.RequestReview()
				p.Approve()
			},
			event: func(p *lifecycle.Post) { p.RequestReview() },
			want:  lifecycle.PhasePublished,
		},
		{
			name: "approve is idempotent once published",
			setup: func(p *lifecycle.Post) {
				p.RequestReview()
				p.Approve()
			},
			event: func(p *lifecycle.Post) { p.Approve() },
			want:  lifecycle.PhasePublished,
		},
		{
			name: "reject on published keeps published",
			setup: func(p *lifecycle.Post) {
				p.RequestReview()
				p.Approve()
			},
			event: func(p *lifecycle.Post) { p.Reject() },
			want:  lifecycle.PhasePublished,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := lifecycle.New()
			post.AddText("body")
			tc.setup(post)
			tc.event(post)
			if got := post.Phase(); got != tc.want {
				t.Fatalf("want phase %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPost_ApproveOnDraftKeepsContentHidden(t *testing.T) {
	post := lifecycle.New()
	post.AddText("unreviewed")
	post.Approve()

	if got := post.Content(); got != "" {
		t.Fatalf("unreviewed content leaked: %q", got)
	}
}

func TestPost_RejectReturnsToDraftForEdits(t *testing.T) {
	post := lifecycle.New()
	post.AddText("needs work")
	post.RequestReview()
	post.Reject()

	if got := post.Phase(); got != lifecycle.PhaseDraft {
		t.Fatalf("expected draft after reject, got %s", got)
	}

	post.AddText(", now fixed")
	post.RequestReview()
	post.Approve()

	if got := post.Content(); got != "needs work, now fixed" {
		t.Fatalf("content after rework mismatch: %q", got)
	}
}
