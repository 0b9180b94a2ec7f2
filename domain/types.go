package domain

import internaldomain "github.com/goliatone/go-publisher/internal/domain"

// Status represents lifecycle states for editorial entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a post still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPendingReview marks a post waiting for editorial review.
	StatusPendingReview = internaldomain.StatusPendingReview
	// StatusPublished identifies a post whose content is visible to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks a post retained for history but no longer visible.
	StatusArchived = internaldomain.StatusArchived
)
