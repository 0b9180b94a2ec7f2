package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory post store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
	revisions map[uuid.UUID][]*PostRevision
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts:     make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
		revisions: make(map[uuid.UUID][]*PostRevision),
	}
}

// Create inserts the supplied post.
func (m *MemoryRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// GetByID retrieves a post by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(record), nil
}

// GetBySlug retrieves a post by slug.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.posts[id]), nil
}

// List returns every post ordered by creation time.
func (m *MemoryRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Post, 0, len(m.posts))
	for _, record := range m.posts {
		out = append(out, clonePost(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Slug < out[j].Slug
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the stored post.
func (m *MemoryRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.posts[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)
	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// CreateRevision appends a revision snapshot.
func (m *MemoryRepository) CreateRevision(_ context.Context, revision *PostRevision) (*PostRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneRevision(revision)
	m.revisions[copied.PostID] = append(m.revisions[copied.PostID], copied)
	return cloneRevision(copied), nil
}

// UpdateRevision replaces a stored revision snapshot.
func (m *MemoryRepository) UpdateRevision(_ context.Context, revision *PostRevision) (*PostRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.revisions[revision.PostID]
	for i, candidate := range stored {
		if candidate.ID == revision.ID {
			copied := cloneRevision(revision)
			stored[i] = copied
			return cloneRevision(copied), nil
		}
	}
	return nil, &NotFoundError{Resource: "post revision", Key: revision.ID.String()}
}

// ListRevisions returns the revisions for a post ordered by version.
func (m *MemoryRepository) ListRevisions(_ context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.revisions[postID]
	out := make([]*PostRevision, 0, len(stored))
	for _, revision := range stored {
		out = append(out, cloneRevision(revision))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Version < out[j].Version
	})
	return out, nil
}

// GetRevision returns a specific revision of a post.
func (m *MemoryRepository) GetRevision(_ context.Context, postID uuid.UUID, version int) (*PostRevision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, revision := range m.revisions[postID] {
		if revision.Version == version {
			return cloneRevision(revision), nil
		}
	}
	return nil, &NotFoundError{Resource: "post revision", Key: postID.String()}
}

func clonePost(record *Post) *Post {
	if record == nil {
		return nil
	}
	copied := *record
	copied.Metadata = cloneMap(record.Metadata)
	copied.Revisions = nil
	if record.PublishedAt != nil {
		at := *record.PublishedAt
		copied.PublishedAt = &at
	}
	if record.PublishedBy != nil {
		by := *record.PublishedBy
		copied.PublishedBy = &by
	}
	if record.PublishedVersion != nil {
		version := *record.PublishedVersion
		copied.PublishedVersion = &version
	}
	return &copied
}

func cloneRevision(revision *PostRevision) *PostRevision {
	if revision == nil {
		return nil
	}
	copied := *revision
	copied.Post = nil
	copied.Snapshot.Metadata = cloneMap(revision.Snapshot.Metadata)
	if revision.PublishedAt != nil {
		at := *revision.PublishedAt
		copied.PublishedAt = &at
	}
	if revision.PublishedBy != nil {
		by := *revision.PublishedBy
		copied.PublishedBy = &by
	}
	return &copied
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}
