package posts

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired             = errors.New("posts: title is required")
	ErrSlugRequired              = errors.New("posts: slug is required")
	ErrSlugInvalid               = errors.New("posts: slug contains invalid characters")
	ErrSlugExists                = errors.New("posts: slug already exists")
	ErrPostIDRequired            = errors.New("posts: post id required")
	ErrActorRequired             = errors.New("posts: actor id required")
	ErrPostNotEditable           = errors.New("posts: only drafts accept text")
	ErrPostArchived              = errors.New("posts: post is archived")
	ErrVersioningDisabled        = errors.New("posts: versioning feature disabled")
	ErrRevisionRequired          = errors.New("posts: revision identifier required")
	ErrRevisionRetentionExceeded = errors.New("posts: revision retention limit reached")
	ErrSnapshotInvalid           = errors.New("posts: revision snapshot failed validation")
	ErrMetadataInvalid           = errors.New("posts: metadata invalid")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
