package domain

import "strings"

// WorkflowState represents high-level lifecycle states understood by workflow engines.
type WorkflowState string

const (
	WorkflowStateDraft         WorkflowState = WorkflowState(StatusDraft)
	WorkflowStatePendingReview WorkflowState = WorkflowState(StatusPendingReview)
	WorkflowStatePublished     WorkflowState = WorkflowState(StatusPublished)
	WorkflowStateArchived      WorkflowState = WorkflowState(StatusArchived)
)

// WorkflowStateFromStatus maps a persisted Status into a workflow state.
func WorkflowStateFromStatus(status Status) WorkflowState {
	switch status {
	case StatusDraft:
		return WorkflowStateDraft
	case StatusPendingReview:
		return WorkflowStatePendingReview
	case StatusPublished:
		return WorkflowStatePublished
	case StatusArchived:
		return WorkflowStateArchived
	default:
		return WorkflowState(strings.TrimSpace(string(status)))
	}
}

// StatusFromWorkflowState maps a workflow state back to the persisted Status value.
func StatusFromWorkflowState(state WorkflowState) Status {
	switch state {
	case WorkflowStateDraft:
		return StatusDraft
	case WorkflowStatePendingReview:
		return StatusPendingReview
	case WorkflowStatePublished:
		return StatusPublished
	case WorkflowStateArchived:
		return StatusArchived
	default:
		return Status(strings.TrimSpace(string(state)))
	}
}

// NormalizeWorkflowState coerces arbitrary state strings into their canonical
// form: lowercase, with whitespace runs and hyphens folded to underscores, so
// human-readable names like "Pending Review" match the pending_review state.
// Empty input resolves to the draft state so callers can treat zero values as fresh entities.
func NormalizeWorkflowState(input string) WorkflowState {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return WorkflowStateDraft
	}
	normalized := strings.Join(fields, "_")
	return WorkflowState(strings.ReplaceAll(normalized, "-", "_"))
}
