// Package lifecycle models the Draft → PendingReview → Published publication
// workflow as a pair of in-memory encodings: Post delegates behaviour to an
// interchangeable phase object at runtime, while DraftPost, PendingReviewPost,
// and PublishedPost encode the phase in the type itself so illegal calls do
// not compile. The editorial service in the posts package drives the same
// transitions against persisted records.
package lifecycle

import "strings"

// Phase identifies where a post sits in its publication lifecycle.
type Phase string

const (
	PhaseDraft         Phase = "draft"
	PhasePendingReview Phase = "pending_review"
	PhasePublished     Phase = "published"
)

// Post holds accumulated text and delegates lifecycle behaviour to its
// current phase object. Every operation is total: transitions requested in a
// phase where they do not apply leave the post unchanged.
type Post struct {
	state   state
	content strings.Builder
}

// New returns a post in the draft phase with empty content.
func New() *Post {
	return &Post{state: draftState{}}
}

// AddText appends text to the post body. Appends are not phase-restricted
// here; the persisted editorial service layers that restriction on top.
func (p *Post) AddText(text string) {
	p.content.WriteString(text)
}

// RequestReview moves a draft into pending review. Posts already in review
// or published stay where they are.
func (p *Post) RequestReview() {
	p.state = p.state.requestReview()
}

// Approve publishes a post that is pending review. Drafts and published
// posts stay where they are.
func (p *Post) Approve() {
	p.state = p.state.approve()
}

// Reject sends a post pending review back to draft. Drafts and published
// posts stay where they are.
func (p *Post) Reject() {
	p.state = p.state.reject()
}

// Content returns the post body once published and an empty string before.
func (p *Post) Content() string {
	return p.state.content(p)
}

// Phase reports the current lifecycle phase.
func (p *Post) Phase() Phase {
	return p.state.phase()
}

// state governs the transitions legal in a given phase. Each transition
// returns the successor state, so a post owns exactly one phase object at a
// time and invalid events collapse to returning the receiver.
type state interface {
	requestReview() state
	approve() state
	reject() state
	content(p *Post) string
	phase() Phase
}

type draftState struct{}

func (s draftState) requestReview() state { return pendingReviewState{} }
func (s draftState) approve() state       { return s }
func (s draftState) reject() state        { return s }
func (draftState) content(*Post) string   { return "" }
func (draftState) phase() Phase           { return PhaseDraft }

type pendingReviewState struct{}

func (s pendingReviewState) requestReview() state { return s }
func (s pendingReviewState) approve() state       { return publishedState{} }
func (s pendingReviewState) reject() state        { return draftState{} }
func (pendingReviewState) content(*Post) string   { return "" }
func (pendingReviewState) phase() Phase           { return PhasePendingReview }

type publishedState struct{}

func (s publishedState) requestReview() state { return s }
func (s publishedState) approve() state       { return s }
func (s publishedState) reject() state        { return s }
func (publishedState) content(p *Post) string { return p.content.String() }
func (publishedState) phase() Phase           { return PhasePublished }
