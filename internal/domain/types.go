package domain

// Status represents lifecycle states for editorial entities
type Status string

const (
	// StatusDraft indicates a post still under preparation
	StatusDraft Status = "draft"
	// StatusPendingReview marks a post waiting for editorial review
	StatusPendingReview Status = "pending_review"
	// StatusPublished identifies a post whose content is visible to readers
	StatusPublished Status = "published"
	// StatusArchived marks a post retained for history but no longer visible
	StatusArchived Status = "archived"
)
