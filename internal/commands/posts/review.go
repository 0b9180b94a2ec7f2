// Package postscmd exposes go-command message types and handlers for the
// editorial post workflow so host dispatchers can drive transitions.
package postscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-publisher/internal/commands"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
	"github.com/goliatone/go-publisher/posts"
)

const submitPostMessageType = "publisher.posts.submit_review"

// SubmitPostForReviewCommand moves a draft into the review queue.
type SubmitPostForReviewCommand struct {
	PostID  uuid.UUID `json:"post_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (SubmitPostForReviewCommand) Type() string { return submitPostMessageType }

// Validate ensures the command carries the required identifiers.
func (m SubmitPostForReviewCommand) Validate() error {
	errs := validation.Errors{}
	if m.PostID == uuid.Nil {
		errs["post_id"] = validation.NewError("publisher.posts.submit_review.post_id_required", "post_id is required")
	}
	if m.ActorID == uuid.Nil {
		errs["actor_id"] = validation.NewError("publisher.posts.submit_review.actor_id_required", "actor_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitPostForReviewHandler submits drafts via the post service.
type SubmitPostForReviewHandler struct {
	inner *commands.Handler[SubmitPostForReviewCommand]
}

// NewSubmitPostForReviewHandler constructs a handler wired to the post service.
func NewSubmitPostForReviewHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitPostForReviewCommand]) *SubmitPostForReviewHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SubmitPostForReviewCommand) error {
		_, err := service.SubmitForReview(ctx, posts.TransitionRequest{
			PostID:  msg.PostID,
			ActorID: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SubmitPostForReviewCommand]{
		commands.WithLogger[SubmitPostForReviewCommand](baseLogger),
		commands.WithOperation[SubmitPostForReviewCommand]("posts.submit_review"),
		commands.WithMessageFields(func(msg SubmitPostForReviewCommand) map[string]any {
			return transitionFields(msg.PostID, msg.ActorID)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitPostForReviewHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SubmitPostForReviewCommand].Execute.
func (h *SubmitPostForReviewHandler) Execute(ctx context.Context, msg SubmitPostForReviewCommand) error {
	return h.inner.Execute(ctx, msg)
}

func transitionFields(postID, actorID uuid.UUID) map[string]any {
	fields := map[string]any{}
	if postID != uuid.Nil {
		fields["post_id"] = postID
	}
	if actorID != uuid.Nil {
		fields["actor_id"] = actorID
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
