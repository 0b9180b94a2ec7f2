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

const (
	approvePostMessageType = "publisher.posts.approve"
	rejectPostMessageType  = "publisher.posts.reject"
)

// ApprovePostCommand records an approval for a pending post. Once enough
// approvals accumulate the post is published.
type ApprovePostCommand struct {
	PostID  uuid.UUID `json:"post_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (ApprovePostCommand) Type() string { return approvePostMessageType }

// Validate ensures the command carries the required identifiers.
func (m ApprovePostCommand) Validate() error {
	return validateTransition("publisher.posts.approve", m.PostID, m.ActorID)
}

// RejectPostCommand returns a pending post to its author for edits.
type RejectPostCommand struct {
	PostID  uuid.UUID `json:"post_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (RejectPostCommand) Type() string { return rejectPostMessageType }

// Validate ensures the command carries the required identifiers.
func (m RejectPostCommand) Validate() error {
	return validateTransition("publisher.posts.reject", m.PostID, m.ActorID)
}

// ApprovePostHandler approves pending posts via the post service.
type ApprovePostHandler struct {
	inner *commands.Handler[ApprovePostCommand]
}

// NewApprovePostHandler constructs a handler wired to the post service.
func NewApprovePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ApprovePostCommand]) *ApprovePostHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ApprovePostCommand) error {
		_, err := service.Approve(ctx, posts.TransitionRequest{
			PostID:  msg.PostID,
			ActorID: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ApprovePostCommand]{
		commands.WithLogger[ApprovePostCommand](baseLogger),
		commands.WithOperation[ApprovePostCommand]("posts.approve"),
		commands.WithMessageFields(func(msg ApprovePostCommand) map[string]any {
			return transitionFields(msg.PostID, msg.ActorID)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ApprovePostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ApprovePostCommand].Execute.
func (h *ApprovePostHandler) Execute(ctx context.Context, msg ApprovePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RejectPostHandler rejects pending posts via the post service.
type RejectPostHandler struct {
	inner *commands.Handler[RejectPostCommand]
}

// NewRejectPostHandler constructs a handler wired to the post service.
func NewRejectPostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RejectPostCommand]) *RejectPostHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RejectPostCommand) error {
		_, err := service.Reject(ctx, posts.TransitionRequest{
			PostID:  msg.PostID,
			ActorID: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[RejectPostCommand]{
		commands.WithLogger[RejectPostCommand](baseLogger),
		commands.WithOperation[RejectPostCommand]("posts.reject"),
		commands.WithMessageFields(func(msg RejectPostCommand) map[string]any {
			return transitionFields(msg.PostID, msg.ActorID)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RejectPostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RejectPostCommand].Execute.
func (h *RejectPostHandler) Execute(ctx context.Context, msg RejectPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

func validateTransition(prefix string, postID, actorID uuid.UUID) error {
	errs := validation.Errors{}
	if postID == uuid.Nil {
		errs["post_id"] = validation.NewError(prefix+".post_id_required", "post_id is required")
	}
	if actorID == uuid.Nil {
		errs["actor_id"] = validation.NewError(prefix+".actor_id_required", "actor_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
