package posts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/internal/workflow"
)

var (
	testAuthor   = uuid.MustParse("7d2a41e5-90b6-4b74-9f6e-0e6cf3a1d101")
	testReviewer = uuid.MustParse("9f1b8a34-22ad-4d04-8f33-6d5a0c2be202")
)

func newTestService(t *testing.T, opts ...ServiceOption) (Service, *MemoryRepository) {
	t.Helper()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository()
	engine := workflow.New(workflow.WithClock(func() time.Time { return now }))
	base := []ServiceOption{
		WithClock(func() time.Time { return now }),
	}
	svc := NewService(repo, engine, append(base, opts...)...)
	return svc, repo
}

func createDraft(t *testing.T, svc Service, title string) *Post {
	t.Helper()
	post, err := svc.Create(context.Background(), CreatePostRequest{
		Title:     title,
		CreatedBy: testAuthor,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestService_CreateNormalizesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	post := createDraft(t, svc, "What I Ate For Lunch")

	if post.Slug != "what-i-ate-for-lunch" {
		t.Fatalf("expected normalized slug, got %q", post.Slug)
	}
	if post.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", post.Status)
	}
	if post.CurrentVersion != 1 {
		t.Fatalf("expected version 1, got %d", post.CurrentVersion)
	}
}

func TestService_CreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)

	createDraft(t, svc, "Lunch Notes")

	_, err := svc.Create(context.Background(), CreatePostRequest{
		Title:     "Lunch Notes",
		CreatedBy: testAuthor,
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name string
		req  CreatePostRequest
		want error
	}{
		{
			name: "missing title",
			req:  CreatePostRequest{CreatedBy: testAuthor},
			want: ErrTitleRequired,
		},
		{
			name: "missing actor",
			req:  CreatePostRequest{Title: "Lunch"},
			want: ErrActorRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if err == nil || !strings.Contains(err.Error(), tc.want.Error()) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_PublicationFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")

	if _, err := svc.AddText(ctx, AddTextRequest{
		PostID:    post.ID,
		Text:      "I ate a salad for lunch today",
		UpdatedBy: testAuthor,
	}); err != nil {
		t.Fatalf("add text: %v", err)
	}

	content, err := svc.VisibleContent(ctx, post.ID)
	if err != nil {
		t.Fatalf("visible content: %v", err)
	}
	if content != "" {
		t.Fatalf("draft content should be hidden, got %q", content)
	}

	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	content, err = svc.VisibleContent(ctx, post.ID)
	if err != nil {
		t.Fatalf("visible content: %v", err)
	}
	if content != "" {
		t.Fatalf("pending content should be hidden, got %q", content)
	}

	published, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("expected published status, got %q", published.Status)
	}
	if published.PublishedAt == nil || published.PublishedBy == nil {
		t.Fatal("expected publish stamps on published post")
	}
	if *published.PublishedBy != testReviewer {
		t.Fatalf("expected publisher %s, got %s", testReviewer, *published.PublishedBy)
	}

	content, err = svc.VisibleContent(ctx, post.ID)
	if err != nil {
		t.Fatalf("visible content: %v", err)
	}
	if content != "I ate a salad for lunch today" {
		t.Fatalf("unexpected published content %q", content)
	}
}

func TestService_AddTextOutsideDraft(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	_, err := svc.AddText(ctx, AddTextRequest{PostID: post.ID, Text: "more", UpdatedBy: testAuthor})
	if !errors.Is(err, ErrPostNotEditable) {
		t.Fatalf("expected ErrPostNotEditable, got %v", err)
	}
}

func TestService_InvalidTransitionsAreNoOps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")

	// Approving or rejecting a draft changes nothing.
	approved, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("approve draft: %v", err)
	}
	if approved.Status != domain.StatusDraft {
		t.Fatalf("approve on draft should be a no-op, got %q", approved.Status)
	}

	rejected, err := svc.Reject(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("reject draft: %v", err)
	}
	if rejected.Status != domain.StatusDraft {
		t.Fatalf("reject on draft should be a no-op, got %q", rejected.Status)
	}

	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	// Repeated review requests are absorbed.
	pending, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor})
	if err != nil {
		t.Fatalf("repeat submit: %v", err)
	}
	if pending.Status != domain.StatusPendingReview {
		t.Fatalf("repeat submit should be a no-op, got %q", pending.Status)
	}

	if _, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Review events on a published post change nothing.
	published, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor})
	if err != nil {
		t.Fatalf("submit published: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("submit on published should be a no-op, got %q", published.Status)
	}
}

func TestService_RejectReturnsToDraft(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	rejected, err := svc.Reject(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.StatusDraft {
		t.Fatalf("expected draft after reject, got %q", rejected.Status)
	}

	// Back in draft the author can keep editing.
	if _, err := svc.AddText(ctx, AddTextRequest{PostID: post.ID, Text: "revised", UpdatedBy: testAuthor}); err != nil {
		t.Fatalf("add text after reject: %v", err)
	}
}

func TestService_ApprovalThreshold(t *testing.T) {
	svc, _ := newTestService(t, WithApprovalsRequired(2))
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	first, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if first.Status != domain.StatusPendingReview {
		t.Fatalf("expected pending after first approval, got %q", first.Status)
	}
	if first.Approvals != 1 {
		t.Fatalf("expected 1 approval, got %d", first.Approvals)
	}

	second, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor})
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if second.Status != domain.StatusPublished {
		t.Fatalf("expected published after second approval, got %q", second.Status)
	}
}

func TestService_RejectResetsApprovals(t *testing.T) {
	svc, _ := newTestService(t, WithApprovalsRequired(2))
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if _, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	rejected, err := svc.Reject(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Approvals != 0 {
		t.Fatalf("expected approvals reset, got %d", rejected.Approvals)
	}
}

func TestService_ArchiveAndRestore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if _, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	archived, err := svc.Archive(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.Status != domain.StatusArchived {
		t.Fatalf("expected archived status, got %q", archived.Status)
	}

	content, err := svc.VisibleContent(ctx, post.ID)
	if err != nil {
		t.Fatalf("visible content: %v", err)
	}
	if content != "" {
		t.Fatalf("archived content should be hidden, got %q", content)
	}

	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); !errors.Is(err, ErrPostArchived) {
		t.Fatalf("expected ErrPostArchived, got %v", err)
	}

	restored, err := svc.Restore(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Status != domain.StatusDraft {
		t.Fatalf("expected draft after restore, got %q", restored.Status)
	}

	// A draft cannot be archived directly.
	if _, err := svc.Archive(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

type stubRenderer struct {
	output string
}

func (r stubRenderer) Render([]byte) (string, error) {
	return r.output, nil
}

func TestService_ApproveRendersBodyHTML(t *testing.T) {
	svc, _ := newTestService(t, WithRenderer(stubRenderer{output: "<p>salad</p>"}))
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.AddText(ctx, AddTextRequest{PostID: post.ID, Text: "salad", UpdatedBy: testAuthor}); err != nil {
		t.Fatalf("add text: %v", err)
	}
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}

	published, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if published.BodyHTML != "<p>salad</p>" {
		t.Fatalf("expected rendered body, got %q", published.BodyHTML)
	}
}

func TestService_RevisionsDisabledByDefault(t *testing.T) {
	svc, _ := newTestService(t)

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.ListRevisions(context.Background(), post.ID); !errors.Is(err, ErrVersioningDisabled) {
		t.Fatalf("expected ErrVersioningDisabled, got %v", err)
	}
}

func TestService_RevisionLifecycle(t *testing.T) {
	svc, _ := newTestService(t, WithVersioning(true, 0))
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.AddText(ctx, AddTextRequest{PostID: post.ID, Text: "salad", UpdatedBy: testAuthor}); err != nil {
		t.Fatalf("add text: %v", err)
	}
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if _, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	revisions, err := svc.ListRevisions(ctx, post.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revisions) != 1 {
		t.Fatalf("expected a single revision for version 1, got %d", len(revisions))
	}
	if revisions[0].PublishedAt == nil {
		t.Fatal("expected publish stamp on published revision")
	}
	if revisions[0].Snapshot.Body != "salad" {
		t.Fatalf("unexpected snapshot body %q", revisions[0].Snapshot.Body)
	}

	restored, err := svc.RestoreRevision(ctx, RestoreRevisionRequest{
		PostID:     post.ID,
		Version:    1,
		RestoredBy: testAuthor,
	})
	if err != nil {
		t.Fatalf("restore revision: %v", err)
	}
	if restored.Status != domain.StatusDraft {
		t.Fatalf("expected draft after restore, got %q", restored.Status)
	}
	if restored.CurrentVersion != 2 {
		t.Fatalf("expected version bump, got %d", restored.CurrentVersion)
	}
	if restored.Body != "salad" {
		t.Fatalf("expected restored body, got %q", restored.Body)
	}

	revisions, err = svc.ListRevisions(ctx, post.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("expected two revisions after restore, got %d", len(revisions))
	}
}

func TestService_RevisionRetentionLimit(t *testing.T) {
	svc, _ := newTestService(t, WithVersioning(true, 1))
	ctx := context.Background()

	post := createDraft(t, svc, "Lunch")
	if _, err := svc.SubmitForReview(ctx, TransitionRequest{PostID: post.ID, ActorID: testAuthor}); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if _, err := svc.Approve(ctx, TransitionRequest{PostID: post.ID, ActorID: testReviewer}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	_, err := svc.RestoreRevision(ctx, RestoreRevisionRequest{
		PostID:     post.ID,
		Version:    1,
		RestoredBy: testAuthor,
	})
	if !errors.Is(err, ErrRevisionRetentionExceeded) {
		t.Fatalf("expected ErrRevisionRetentionExceeded, got %v", err)
	}
}

func TestService_GetBySlug(t *testing.T) {
	svc, _ := newTestService(t)

	created := createDraft(t, svc, "Lunch Notes")

	found, err := svc.GetBySlug(context.Background(), "lunch-notes")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, found.ID)
	}

	var notFound *NotFoundError
	_, err = svc.GetBySlug(context.Background(), "missing-post")
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
