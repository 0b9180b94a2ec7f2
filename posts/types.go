package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-publisher/domain"
)

// Post is the canonical editorial record. Body stays hidden from readers
// until the post reaches the published status.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID               uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	Slug             string          `bun:"slug,notnull" json:"slug"`
	Title            string          `bun:"title,notnull" json:"title"`
	Status           domain.Status   `bun:"status,notnull,default:'draft'" json:"status"`
	Body             string          `bun:"body,notnull,default:''" json:"body"`
	BodyHTML         string          `bun:"body_html,notnull,default:''" json:"body_html"`
	Approvals        int             `bun:"approvals,notnull,default:0" json:"approvals"`
	CurrentVersion   int             `bun:"current_version,notnull,default:1" json:"current_version"`
	PublishedVersion *int            `bun:"published_version" json:"published_version,omitempty"`
	Metadata         map[string]any  `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	PublishedAt      *time.Time      `bun:"published_at,nullzero" json:"published_at,omitempty"`
	PublishedBy      *uuid.UUID      `bun:"published_by,type:uuid" json:"published_by,omitempty"`
	CreatedBy        uuid.UUID       `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy        uuid.UUID       `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt        time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Revisions        []*PostRevision `bun:"rel:has-many,join:id=post_id" json:"revisions,omitempty"`
}

// PostRevision captures an immutable snapshot of a post payload.
type PostRevision struct {
	bun.BaseModel `bun:"table:post_revisions,alias:pr"`

	ID          uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	PostID      uuid.UUID        `bun:"post_id,notnull,type:uuid" json:"post_id"`
	Version     int              `bun:"version,notnull" json:"version"`
	Status      domain.Status    `bun:"status,notnull,default:'draft'" json:"status"`
	Snapshot    RevisionSnapshot `bun:"snapshot,type:jsonb,notnull" json:"snapshot"`
	CreatedBy   uuid.UUID        `bun:"created_by,notnull,type:uuid" json:"created_by"`
	CreatedAt   time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	PublishedAt *time.Time       `bun:"published_at,nullzero" json:"published_at,omitempty"`
	PublishedBy *uuid.UUID       `bun:"published_by,type:uuid" json:"published_by,omitempty"`
	Post        *Post            `bun:"rel:belongs-to,join:post_id=id" json:"post,omitempty"`
}

// RevisionSnapshot is the persisted JSON payload for revision history.
type RevisionSnapshot struct {
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
