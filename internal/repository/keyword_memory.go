package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/lineoa/keywordconsole/internal/domain"
)

// KeywordMemoryRepository keeps keyword replies in process memory
type KeywordMemoryRepository struct {
	mu      sync.RWMutex
	replies map[string]*domain.KeywordReply
}

// NewKeywordMemoryRepository creates an empty repository
func NewKeywordMemoryRepository() *KeywordMemoryRepository {
	return &KeywordMemoryRepository{
		replies: make(map[string]*domain.KeywordReply),
	}
}

// CreateKeyword stores a copy of reply. The ID must be unused.
func (r *KeywordMemoryRepository) CreateKeyword(ctx context.Context, reply *domain.KeywordReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.replies[reply.ID]; exists {
		return domain.NewValidationError("keyword reply " + reply.ID + " already exists")
	}
	r.replies[reply.ID] = copyReply(reply)
	return nil
}

// GetKeyword returns a copy of the stored reply
func (r *KeywordMemoryRepository) GetKeyword(ctx context.Context, id string) (*domain.KeywordReply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reply, ok := r.replies[id]
	if !ok {
		return nil, domain.ErrKeywordNotFound(id)
	}
	return copyReply(reply), nil
}

// ListKeywords returns copies of matching replies ordered by creation time
func (r *KeywordMemoryRepository) ListKeywords(ctx context.Context, filter domain.KeywordFilter) ([]*domain.KeywordReply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.KeywordReply, 0, len(r.replies))
	for _, reply := range r.replies {
		if filter.Match(reply) {
			out = append(out, copyReply(reply))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateKeyword replaces a stored reply
func (r *KeywordMemoryRepository) UpdateKeyword(ctx context.Context, reply *domain.KeywordReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.replies[reply.ID]; !ok {
		return domain.ErrKeywordNotFound(reply.ID)
	}
	r.replies[reply.ID] = copyReply(reply)
	return nil
}

// DeleteKeyword removes a stored reply
func (r *KeywordMemoryRepository) DeleteKeyword(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.replies[id]; !ok {
		return domain.ErrKeywordNotFound(id)
	}
	delete(r.replies, id)
	return nil
}

func copyReply(reply *domain.KeywordReply) *domain.KeywordReply {
	c := *reply
	c.Keywords = copyStrings(reply.Keywords)
	c.AddTags = copyStrings(reply.AddTags)
	c.RemoveTags = copyStrings(reply.RemoveTags)
	if reply.Flex != nil {
		c.Flex = reply.Flex.Clone()
	}
	return &c
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
