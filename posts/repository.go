package posts

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}

func NewPostRevisionRepository(db *bun.DB) repository.Repository[*PostRevision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PostRevision]{
		NewRecord: func() *PostRevision { return &PostRevision{} },
		GetID: func(pr *PostRevision) uuid.UUID {
			return pr.ID
		},
		SetID: func(pr *PostRevision, id uuid.UUID) {
			pr.ID = id
		},
		// Revisions carry no natural key beyond their row id; the handlers
		// validation requires a non-empty identifier column.
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(pr *PostRevision) string {
			return pr.ID.String()
		},
	})
}
