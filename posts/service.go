package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	internaldomain "github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/workflow"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Service exposes the editorial post workflow use cases.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	AddText(ctx context.Context, req AddTextRequest) (*Post, error)
	SubmitForReview(ctx context.Context, req TransitionRequest) (*Post, error)
	Approve(ctx context.Context, req TransitionRequest) (*Post, error)
	Reject(ctx context.Context, req TransitionRequest) (*Post, error)
	Archive(ctx context.Context, req TransitionRequest) (*Post, error)
	Restore(ctx context.Context, req TransitionRequest) (*Post, error)
	VisibleContent(ctx context.Context, id uuid.UUID) (string, error)
	ListRevisions(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error)
	RestoreRevision(ctx context.Context, req RestoreRevisionRequest) (*Post, error)
}

// Repository abstracts storage operations for posts and their revisions.
type Repository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	CreateRevision(ctx context.Context, revision *PostRevision) (*PostRevision, error)
	UpdateRevision(ctx context.Context, revision *PostRevision) (*PostRevision, error)
	ListRevisions(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error)
	GetRevision(ctx context.Context, postID uuid.UUID, version int) (*PostRevision, error)
}

// Renderer converts a post body into HTML at publish time.
type Renderer interface {
	Render(source []byte) (string, error)
}

// CreatePostRequest captures the information required to create a post.
type CreatePostRequest struct {
	Title     string
	Slug      string
	Body      string
	Metadata  map[string]any
	CreatedBy uuid.UUID
}

// Validate checks request invariants before the service touches storage.
func (r CreatePostRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = ErrTitleRequired
	}
	if r.CreatedBy == uuid.Nil {
		errs["created_by"] = ErrActorRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddTextRequest appends text to a draft post body.
type AddTextRequest struct {
	PostID    uuid.UUID
	Text      string
	UpdatedBy uuid.UUID
}

// Validate checks request invariants before the service touches storage.
func (r AddTextRequest) Validate() error {
	errs := validation.Errors{}
	if r.PostID == uuid.Nil {
		errs["post_id"] = ErrPostIDRequired
	}
	if r.UpdatedBy == uuid.Nil {
		errs["updated_by"] = ErrActorRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TransitionRequest drives a lifecycle event for a post.
type TransitionRequest struct {
	PostID  uuid.UUID
	ActorID uuid.UUID
}

// Validate checks request invariants before the service touches storage.
func (r TransitionRequest) Validate() error {
	errs := validation.Errors{}
	if r.PostID == uuid.Nil {
		errs["post_id"] = ErrPostIDRequired
	}
	if r.ActorID == uuid.Nil {
		errs["actor_id"] = ErrActorRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RestoreRevisionRequest restores a prior revision into the working draft.
type RestoreRevisionRequest struct {
	PostID     uuid.UUID
	Version    int
	RestoredBy uuid.UUID
}

// Validate checks request invariants before the service touches storage.
func (r RestoreRevisionRequest) Validate() error {
	errs := validation.Errors{}
	if r.PostID == uuid.Nil {
		errs["post_id"] = ErrPostIDRequired
	}
	if r.Version <= 0 {
		errs["version"] = ErrRevisionRequired
	}
	if r.RestoredBy == uuid.Nil {
		errs["restored_by"] = ErrActorRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IDGenerator mints identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches the module logger used for workflow diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer sets the renderer invoked at publish time to produce BodyHTML.
// Without a renderer published posts keep an empty BodyHTML.
func WithRenderer(renderer Renderer) ServiceOption {
	return func(s *service) {
		s.renderer = renderer
	}
}

// WithApprovalsRequired sets how many distinct approvals publish a pending
// post. Values below one are coerced to one.
func WithApprovalsRequired(count int) ServiceOption {
	return func(s *service) {
		if count < 1 {
			count = 1
		}
		s.approvalsRequired = count
	}
}

// WithVersioning toggles revision snapshots; retention limits how many
// revisions a post may accumulate (zero keeps everything).
func WithVersioning(enabled bool, retention int) ServiceOption {
	return func(s *service) {
		s.versioning = enabled
		if retention > 0 {
			s.retention = retention
		}
	}
}

type service struct {
	repo              Repository
	engine            interfaces.WorkflowEngine
	logger            interfaces.Logger
	renderer          Renderer
	now               func() time.Time
	id                IDGenerator
	approvalsRequired int
	versioning        bool
	retention         int
}

// NewService wires the editorial service around a repository and a workflow
// engine. The engine owns the transition table; the service owns the
// editorial side effects (approval counting, publish stamps, revisions).
func NewService(repo Repository, engine interfaces.WorkflowEngine, opts ...ServiceOption) Service {
	svc := &service{
		repo:              repo,
		engine:            engine,
		logger:            logging.NoOp(),
		now:               time.Now,
		id:                uuid.New,
		approvalsRequired: 1,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	slugValue := strings.TrimSpace(req.Slug)
	if slugValue == "" {
		slugValue = req.Title
	}
	normalized, err := NormalizeSlug(slugValue)
	if err != nil || normalized == "" {
		return nil, ErrSlugInvalid
	}

	if _, err := s.repo.GetBySlug(ctx, normalized); err == nil {
		return nil, ErrSlugExists
	} else if !isNotFound(err) {
		return nil, err
	}

	now := s.now()
	record := &Post{
		ID:             s.id(),
		Slug:           normalized,
		Title:          strings.TrimSpace(req.Title),
		Status:         internaldomain.StatusDraft,
		Body:           req.Body,
		Metadata:       req.Metadata,
		CurrentVersion: 1,
		CreatedBy:      req.CreatedBy,
		UpdatedBy:      req.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if s.versioning {
		if _, err := s.snapshot(ctx, created, req.CreatedBy); err != nil {
			return nil, err
		}
	}

	s.logger.Info("post created", "post_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil || normalized == "" {
		return nil, ErrSlugInvalid
	}
	return s.repo.GetBySlug(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx)
}

func (s *service) AddText(ctx context.Context, req AddTextRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != internaldomain.StatusDraft {
		return nil, ErrPostNotEditable
	}

	post.Body += req.Text
	post.UpdatedBy = req.UpdatedBy
	post.UpdatedAt = s.now()
	return s.repo.Update(ctx, post)
}

func (s *service) SubmitForReview(ctx context.Context, req TransitionRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case internaldomain.StatusPendingReview, internaldomain.StatusPublished:
		// Repeated review requests and requests on published posts are
		// absorbed without touching the record.
		return post, nil
	case internaldomain.StatusArchived:
		return nil, ErrPostArchived
	}

	result, err := s.transition(ctx, post, workflow.TransitionRequestReview, req.ActorID)
	if err != nil {
		return nil, err
	}

	post.Status = internaldomain.StatusFromWorkflowState(internaldomain.WorkflowState(result.ToState))
	post.Approvals = 0
	post.UpdatedBy = req.ActorID
	post.UpdatedAt = result.CompletedAt

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if s.versioning {
		if _, err := s.snapshot(ctx, updated, req.ActorID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("post submitted for review", "post_id", post.ID)
	return updated, nil
}

func (s *service) Approve(ctx context.Context, req TransitionRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case internaldomain.StatusDraft, internaldomain.StatusPublished:
		// Approving a draft or an already-published post leaves it unchanged.
		return post, nil
	case internaldomain.StatusArchived:
		return nil, ErrPostArchived
	}

	post.Approvals++
	if post.Approvals < s.approvalsRequired {
		post.UpdatedBy = req.ActorID
		post.UpdatedAt = s.now()
		updated, err := s.repo.Update(ctx, post)
		if err != nil {
			return nil, err
		}
		s.logger.Info("post approval recorded",
			"post_id", post.ID,
			"approvals", post.Approvals,
			"required", s.approvalsRequired,
		)
		return updated, nil
	}

	result, err := s.transition(ctx, post, workflow.TransitionApprove, req.ActorID)
	if err != nil {
		return nil, err
	}

	publishedAt := result.CompletedAt
	actor := req.ActorID
	post.Status = internaldomain.StatusFromWorkflowState(internaldomain.WorkflowState(result.ToState))
	post.PublishedAt = &publishedAt
	post.PublishedBy = &actor
	version := post.CurrentVersion
	post.PublishedVersion = &version
	post.UpdatedBy = req.ActorID
	post.UpdatedAt = publishedAt

	if s.renderer != nil {
		html, err := s.renderer.Render([]byte(post.Body))
		if err != nil {
			return nil, err
		}
		post.BodyHTML = html
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if s.versioning {
		if err := s.markRevisionPublished(ctx, updated, req.ActorID, publishedAt); err != nil {
			return nil, err
		}
	}

	s.logger.Info("post published", "post_id", post.ID, "version", version)
	return updated, nil
}

func (s *service) Reject(ctx context.Context, req TransitionRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case internaldomain.StatusDraft, internaldomain.StatusPublished:
		return post, nil
	case internaldomain.StatusArchived:
		return nil, ErrPostArchived
	}

	result, err := s.transition(ctx, post, workflow.TransitionReject, req.ActorID)
	if err != nil {
		return nil, err
	}

	post.Status = internaldomain.StatusFromWorkflowState(internaldomain.WorkflowState(result.ToState))
	post.Approvals = 0
	post.UpdatedBy = req.ActorID
	post.UpdatedAt = result.CompletedAt

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post rejected", "post_id", post.ID)
	return updated, nil
}

func (s *service) Archive(ctx context.Context, req TransitionRequest) (*Post, error) {
	return s.applyTransition(ctx, req, workflow.TransitionArchive)
}

func (s *service) Restore(ctx context.Context, req TransitionRequest) (*Post, error) {
	return s.applyTransition(ctx, req, workflow.TransitionRestore)
}

// applyTransition runs a strict engine transition: unlike the review events
// above, invalid phases surface the engine error instead of a no-op.
func (s *service) applyTransition(ctx context.Context, req TransitionRequest, name string) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	result, err := s.transition(ctx, post, name, req.ActorID)
	if err != nil {
		return nil, err
	}

	post.Status = internaldomain.StatusFromWorkflowState(internaldomain.WorkflowState(result.ToState))
	post.Approvals = 0
	post.UpdatedBy = req.ActorID
	post.UpdatedAt = result.CompletedAt

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post transitioned",
		"post_id", post.ID,
		"transition", name,
		"status", string(post.Status),
	)
	return updated, nil
}

func (s *service) VisibleContent(ctx context.Context, id uuid.UUID) (string, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if post.Status != internaldomain.StatusPublished {
		return "", nil
	}
	return post.Body, nil
}

func (s *service) ListRevisions(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	if !s.versioning {
		return nil, ErrVersioningDisabled
	}
	if postID == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	return s.repo.ListRevisions(ctx, postID)
}

func (s *service) RestoreRevision(ctx context.Context, req RestoreRevisionRequest) (*Post, error) {
	if !s.versioning {
		return nil, ErrVersioningDisabled
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	revision, err := s.repo.GetRevision(ctx, req.PostID, req.Version)
	if err != nil {
		return nil, err
	}

	if s.retention > 0 {
		revisions, err := s.repo.ListRevisions(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if len(revisions) >= s.retention {
			return nil, ErrRevisionRetentionExceeded
		}
	}

	post.Title = revision.Snapshot.Title
	post.Body = revision.Snapshot.Body
	post.Metadata = revision.Snapshot.Metadata
	post.Status = internaldomain.StatusDraft
	post.Approvals = 0
	post.BodyHTML = ""
	post.CurrentVersion++
	post.UpdatedBy = req.RestoredBy
	post.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if _, err := s.snapshot(ctx, updated, req.RestoredBy); err != nil {
		return nil, err
	}

	s.logger.Info("post revision restored",
		"post_id", post.ID,
		"restored_version", req.Version,
		"current_version", post.CurrentVersion,
	)
	return updated, nil
}

func (s *service) transition(ctx context.Context, post *Post, name string, actor uuid.UUID) (*interfaces.TransitionResult, error) {
	return s.engine.Transition(ctx, interfaces.TransitionInput{
		EntityID:     post.ID,
		EntityType:   workflow.EntityTypePost,
		CurrentState: interfaces.WorkflowState(internaldomain.WorkflowStateFromStatus(post.Status)),
		Transition:   name,
		ActorID:      actor,
	})
}

// snapshot records the current post payload as the revision for its current
// version, replacing any earlier snapshot of the same version.
func (s *service) snapshot(ctx context.Context, post *Post, actor uuid.UUID) (*PostRevision, error) {
	content := RevisionSnapshot{
		Title:    post.Title,
		Body:     post.Body,
		Metadata: post.Metadata,
	}
	if err := ValidateSnapshot(content); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetRevision(ctx, post.ID, post.CurrentVersion)
	if err == nil {
		existing.Status = post.Status
		existing.Snapshot = content
		return s.repo.UpdateRevision(ctx, existing)
	}
	if !isNotFound(err) {
		return nil, err
	}

	if s.retention > 0 {
		revisions, err := s.repo.ListRevisions(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		if len(revisions) >= s.retention {
			return nil, ErrRevisionRetentionExceeded
		}
	}

	return s.repo.CreateRevision(ctx, &PostRevision{
		ID:        s.id(),
		PostID:    post.ID,
		Version:   post.CurrentVersion,
		Status:    post.Status,
		Snapshot:  content,
		CreatedBy: actor,
		CreatedAt: s.now(),
	})
}

func (s *service) markRevisionPublished(ctx context.Context, post *Post, actor uuid.UUID, at time.Time) error {
	revision, err := s.repo.GetRevision(ctx, post.ID, post.CurrentVersion)
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		revision, err = s.snapshot(ctx, post, actor)
		if err != nil {
			return err
		}
	}

	revision.Status = post.Status
	revision.PublishedAt = &at
	revision.PublishedBy = &actor
	_, err = s.repo.UpdateRevision(ctx, revision)
	return err
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
