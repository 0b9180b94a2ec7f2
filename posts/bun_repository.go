package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists posts and their revisions through bun.
type BunRepository struct {
	db        *bun.DB
	posts     repository.Repository[*Post]
	revisions repository.Repository[*PostRevision]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:        db,
		posts:     wrapWithCache(NewPostRepository(db), cacheService, keySerializer),
		revisions: wrapWithCache(NewPostRevisionRepository(db), cacheService, keySerializer),
	}
}

func (r *BunRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.posts.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository create: %w", err)
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	record, err := r.posts.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	records, _, err := r.posts.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.posts.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.posts.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"status",
			"body",
			"body_html",
			"approvals",
			"current_version",
			"published_version",
			"metadata",
			"published_at",
			"published_by",
			"updated_by",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", record.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) CreateRevision(ctx context.Context, revision *PostRevision) (*PostRevision, error) {
	created, err := r.revisions.Create(ctx, revision)
	if err != nil {
		return nil, fmt.Errorf("post revision create: %w", err)
	}
	return created, nil
}

func (r *BunRepository) UpdateRevision(ctx context.Context, revision *PostRevision) (*PostRevision, error) {
	updated, err := r.revisions.Update(ctx, revision,
		repository.UpdateByID(revision.ID.String()),
		repository.UpdateColumns(
			"status",
			"snapshot",
			"published_at",
			"published_by",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post revision", revision.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) ListRevisions(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	records, _, err := r.revisions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.version ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) GetRevision(ctx context.Context, postID uuid.UUID, version int) (*PostRevision, error) {
	records, _, err := r.revisions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.version = ?", version)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post revision", fmt.Sprintf("%s@%d", postID, version))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "post revision", Key: fmt.Sprintf("%s@%d", postID, version)}
	}
	return records[0], nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
