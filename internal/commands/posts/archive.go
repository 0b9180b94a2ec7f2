package postscmd

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-publisher/internal/commands"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
	"github.com/goliatone/go-publisher/posts"
)

const (
	archivePostMessageType = "publisher.posts.archive"
	restorePostMessageType = "publisher.posts.restore"
)

// ArchivePostCommand retires a published post.
type ArchivePostCommand struct {
	PostID  uuid.UUID `json:"post_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (ArchivePostCommand) Type() string { return archivePostMessageType }

// Validate ensures the command carries the required identifiers.
func (m ArchivePostCommand) Validate() error {
	return validateTransition("publisher.posts.archive", m.PostID, m.ActorID)
}

// RestorePostCommand returns an archived post to draft.
type RestorePostCommand struct {
	PostID  uuid.UUID `json:"post_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (RestorePostCommand) Type() string { return restorePostMessageType }

// Validate ensures the command carries the required identifiers.
func (m RestorePostCommand) Validate() error {
	return validateTransition("publisher.posts.restore", m.PostID, m.ActorID)
}

// ArchivePostHandler archives published posts via the post service.
type ArchivePostHandler struct {
	inner *commands.Handler[ArchivePostCommand]
}

// NewArchivePostHandler constructs a handler wired to the post service.
func NewArchivePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ArchivePostCommand]) *ArchivePostHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ArchivePostCommand) error {
		_, err := service.Archive(ctx, posts.TransitionRequest{
			PostID:  msg.PostID,
			ActorID: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ArchivePostCommand]{
		commands.WithLogger[ArchivePostCommand](baseLogger),
		commands.WithOperation[ArchivePostCommand]("posts.archive"),
		commands.WithMessageFields(func(msg ArchivePostCommand) map[string]any {
			return transitionFields(msg.PostID, msg.ActorID)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ArchivePostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ArchivePostCommand].Execute.
func (h *ArchivePostHandler) Execute(ctx context.Context, msg ArchivePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RestorePostHandler restores archived posts via the post service.
type RestorePostHandler struct {
	inner *commands.Handler[RestorePostCommand]
}

// NewRestorePostHandler constructs a handler wired to the post service.
func NewRestorePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RestorePostCommand]) *RestorePostHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RestorePostCommand) error {
		_, err := service.Restore(ctx, posts.TransitionRequest{
			PostID:  msg.PostID,
			ActorID: msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[RestorePostCommand]{
		commands.WithLogger[RestorePostCommand](baseLogger),
		commands.WithOperation[RestorePostCommand]("posts.restore"),
		commands.WithMessageFields(func(msg RestorePostCommand) map[string]any {
			return transitionFields(msg.PostID, msg.ActorID)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RestorePostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RestorePostCommand].Execute.
func (h *RestorePostHandler) Execute(ctx context.Context, msg RestorePostCommand) error {
	return h.inner.Execute(ctx, msg)
}
