package lifecycle

import "strings"

// The typed encoding makes the phase part of the value's type: only drafts
// accept text, only pending-review posts can be approved or rejected, and
// only published posts expose their content. A transition consumes its
// receiver, so Go code cannot keep using a handle from an earlier phase.
// Go has no move semantics, so consumption is enforced at runtime: once a
// handle has transitioned, further transitions on it return nil and its
// buffered content is gone.

// DraftPost is a post in the draft phase. It is the only phase that accepts
// text, and the only way to obtain a PendingReviewPost.
type DraftPost struct {
	content  strings.Builder
	consumed bool
}

// NewDraft returns a draft post with empty content.
func NewDraft() *DraftPost {
	return &DraftPost{}
}

// AddText appends text to the draft body. Consumed drafts drop the text.
func (p *DraftPost) AddText(text string) {
	if p.consumed {
		return
	}
	p.content.WriteString(text)
}

// RequestReview consumes the draft and returns the pending-review post
// carrying its content. Returns nil when the draft was already consumed.
func (p *DraftPost) RequestReview() *PendingReviewPost {
	if p.consumed {
		return nil
	}
	p.consumed = true
	next := &PendingReviewPost{content: p.content.String()}
	p.content.Reset()
	return next
}

// PendingReviewPost is a post waiting for editorial review. It exposes no
// way to read or extend the content; the only moves are approval and
// rejection.
type PendingReviewPost struct {
	content  string
	consumed bool
}

// Approve consumes the pending-review post and returns the published post.
// Returns nil when the handle was already consumed.
func (p *PendingReviewPost) Approve() *PublishedPost {
	if p.consumed {
		return nil
	}
	p.consumed = true
	next := &PublishedPost{content: p.content}
	p.content = ""
	return next
}

// Reject consumes the pending-review post and returns the content to a new
// draft for further edits. Returns nil when the handle was already consumed.
func (p *PendingReviewPost) Reject() *DraftPost {
	if p.consumed {
		return nil
	}
	p.consumed = true
	next := NewDraft()
	next.content.WriteString(p.content)
	p.content = ""
	return next
}

// PublishedPost is the terminal phase: its content is readable and the value
// offers no further transitions.
type PublishedPost struct {
	content string
}

// Content returns the full post body.
func (p *PublishedPost) Content() string {
	return p.content
}
