// Package workflow provides an in-memory engine that executes deterministic
// lifecycle transitions for editorial entities. Definitions are registered
// per entity type; the built-in post workflow covers the draft, pending
// review, published, and archived states.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// EntityTypePost identifies the built-in post workflow definition.
const EntityTypePost = "post"

// Transition names understood by the default post workflow.
const (
	TransitionRequestReview = "request_review"
	TransitionApprove       = "approve"
	TransitionReject        = "reject"
	TransitionArchive       = "archive"
	TransitionRestore       = "restore"
)

var (
	// ErrUnknownEntityType indicates no workflow definition exists for the requested entity.
	ErrUnknownEntityType = errors.New("workflow: entity type not registered")
	// ErrInvalidTransition indicates the requested transition is not allowed.
	ErrInvalidTransition = errors.New("workflow: transition not allowed")
	// ErrMissingTransition indicates neither a transition name nor target state were supplied.
	ErrMissingTransition = errors.New("workflow: transition name or target state required")
	// ErrNilEntityID signals input validation failure.
	ErrNilEntityID = errors.New("workflow: entity id required")
)

// Engine is a simple in-memory workflow engine that executes deterministic state transitions.
type Engine struct {
	mu          sync.RWMutex
	definitions map[string]*compiledDefinition
	now         func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the clock used for transition timestamps (primarily for testing).
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// New constructs a workflow engine seeded with the default post workflow.
func New(opts ...Option) *Engine {
	engine := &Engine{
		definitions: make(map[string]*compiledDefinition),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}

	_ = engine.RegisterWorkflow(context.Background(), DefaultPostDefinition())

	return engine
}

var _ interfaces.WorkflowEngine = (*Engine)(nil)

// Transition applies a workflow transition for an entity.
func (e *Engine) Transition(ctx context.Context, input interfaces.TransitionInput) (*interfaces.TransitionResult, error) {
	if input.EntityID == uuid.Nil {
		return nil, ErrNilEntityID
	}

	definition, err := e.definitionFor(input.EntityType)
	if err != nil {
		return nil, err
	}

	current := toState(input.CurrentState, definition.definition.InitialState)
	transitionName := strings.TrimSpace(strings.ToLower(input.Transition))
	var targetState interfaces.WorkflowState
	if strings.TrimSpace(string(input.TargetState)) != "" {
		targetState = normalizeState(input.TargetState)
	}

	if transitionName == "" && (targetState == "" || targetState == current) {
		// Same-state requests resolve as no-ops so callers can absorb
		// idempotent events without consulting the transition table.
		return &interfaces.TransitionResult{
			EntityID:    input.EntityID,
			EntityType:  input.EntityType,
			FromState:   current,
			ToState:     current,
			CompletedAt: e.now(),
			ActorID:     input.ActorID,
			Metadata:    cloneMetadata(input.Metadata),
		}, nil
	}

	var transition interfaces.WorkflowTransition
	switch {
	case transitionName != "":
		transition, err = definition.lookupTransition(transitionName, current)
	case targetState != "":
		transition, err = definition.lookupByStates(current, targetState)
	default:
		return nil, ErrMissingTransition
	}
	if err != nil {
		return nil, err
	}

	return &interfaces.TransitionResult{
		EntityID:    input.EntityID,
		EntityType:  input.EntityType,
		Transition:  transition.Name,
		FromState:   current,
		ToState:     normalizeState(transition.To),
		CompletedAt: e.now(),
		ActorID:     input.ActorID,
		Metadata:    cloneMetadata(input.Metadata),
	}, nil
}

// AvailableTransitions returns the transitions reachable from the supplied state.
func (e *Engine) AvailableTransitions(ctx context.Context, query interfaces.TransitionQuery) ([]interfaces.WorkflowTransition, error) {
	definition, err := e.definitionFor(query.EntityType)
	if err != nil {
		return nil, err
	}
	state := toState(query.State, definition.definition.InitialState)
	transitions := definition.transitionsByState[state]
	result := make([]interfaces.WorkflowTransition, len(transitions))
	copy(result, transitions)
	return result, nil
}

// RegisterWorkflow installs a workflow definition for the supplied entity type.
func (e *Engine) RegisterWorkflow(ctx context.Context, definition interfaces.WorkflowDefinition) error {
	if strings.TrimSpace(definition.EntityType) == "" {
		return fmt.Errorf("workflow: entity type required")
	}
	compiled := compile(definition)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.definitions[definition.EntityType] = compiled
	return nil
}

func (e *Engine) definitionFor(entityType string) (*compiledDefinition, error) {
	e.mu.RLock()
	definition, ok := e.definitions[entityType]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return definition, nil
}

type compiledDefinition struct {
	definition         interfaces.WorkflowDefinition
	transitions        map[string]interfaces.WorkflowTransition
	transitionsByState map[interfaces.WorkflowState][]interfaces.WorkflowTransition
}

func compile(definition interfaces.WorkflowDefinition) *compiledDefinition {
	compiled := &compiledDefinition{
		definition:         definition,
		transitions:        make(map[string]interfaces.WorkflowTransition),
		transitionsByState: make(map[interfaces.WorkflowState][]interfaces.WorkflowTransition),
	}
	for _, transition := range definition.Transitions {
		from := normalizeState(transition.From)
		to := normalizeState(transition.To)
		transition.From = from
		transition.To = to
		key := transitionKey(transition.Name, from)
		compiled.transitions[key] = transition
		compiled.transitionsByState[from] = append(compiled.transitionsByState[from], transition)
	}
	return compiled
}

func (d *compiledDefinition) lookupTransition(name string, state interfaces.WorkflowState) (interfaces.WorkflowTransition, error) {
	key := transitionKey(name, normalizeState(state))
	transition, ok := d.transitions[key]
	if !ok {
		return interfaces.WorkflowTransition{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, name, state)
	}
	return transition, nil
}

func (d *compiledDefinition) lookupByStates(from, to interfaces.WorkflowState) (interfaces.WorkflowTransition, error) {
	transitions := d.transitionsByState[normalizeState(from)]
	target := normalizeState(to)
	for _, candidate := range transitions {
		if normalizeState(candidate.To) == target {
			return candidate, nil
		}
	}
	return interfaces.WorkflowTransition{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func transitionKey(name string, from interfaces.WorkflowState) string {
	return strings.TrimSpace(strings.ToLower(name)) + "::" + string(normalizeState(from))
}

func toState(state interfaces.WorkflowState, fallback interfaces.WorkflowState) interfaces.WorkflowState {
	if strings.TrimSpace(string(state)) == "" {
		return normalizeState(fallback)
	}
	return normalizeState(state)
}

func normalizeState(state interfaces.WorkflowState) interfaces.WorkflowState {
	return interfaces.WorkflowState(domain.NormalizeWorkflowState(string(state)))
}

func cloneMetadata(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}
	clone := make(map[string]any, len(input))
	for k, v := range input {
		clone[k] = v
	}
	return clone
}

// DefaultPostDefinition returns the built-in publication workflow: drafts go
// through review before publishing, rejected posts return to draft, and
// published posts can be archived and later restored.
func DefaultPostDefinition() interfaces.WorkflowDefinition {
	return interfaces.WorkflowDefinition{
		EntityType:   EntityTypePost,
		InitialState: interfaces.WorkflowState(domain.WorkflowStateDraft),
		States: []interfaces.WorkflowStateDefinition{
			{Name: interfaces.WorkflowState(domain.WorkflowStateDraft), Description: "Draft content under preparation"},
			{Name: interfaces.WorkflowState(domain.WorkflowStatePendingReview), Description: "Waiting for editorial review"},
			{Name: interfaces.WorkflowState(domain.WorkflowStatePublished), Description: "Published and visible"},
			{Name: interfaces.WorkflowState(domain.WorkflowStateArchived), Description: "Archived and hidden", Terminal: true},
		},
		Transitions: []interfaces.WorkflowTransition{
			{Name: TransitionRequestReview, From: interfaces.WorkflowState(domain.WorkflowStateDraft), To: interfaces.WorkflowState(domain.WorkflowStatePendingReview)},
			{Name: TransitionApprove, From: interfaces.WorkflowState(domain.WorkflowStatePendingReview), To: interfaces.WorkflowState(domain.WorkflowStatePublished)},
			{Name: TransitionReject, From: interfaces.WorkflowState(domain.WorkflowStatePendingReview), To: interfaces.WorkflowState(domain.WorkflowStateDraft)},
			{Name: TransitionArchive, From: interfaces.WorkflowState(domain.WorkflowStatePublished), To: interfaces.WorkflowState(domain.WorkflowStateArchived)},
			{Name: TransitionRestore, From: interfaces.WorkflowState(domain.WorkflowStateArchived), To: interfaces.WorkflowState(domain.WorkflowStateDraft)},
		},
	}
}
