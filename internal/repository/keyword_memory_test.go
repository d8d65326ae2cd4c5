package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
)

func newReply(id, keyword string, messageType domain.MessageType, createdAt time.Time) *domain.KeywordReply {
	reply := &domain.KeywordReply{
		ID:          id,
		Keywords:    []string{keyword},
		MessageType: messageType,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if messageType == domain.MessageTypeFlex {
		ids := flexmessage.NewSequenceGenerator(id)
		reply.Flex = flexmessage.NewSections()
		reply.Flex[flexmessage.SectionBody] = flexmessage.Tree{flexmessage.NewElementWithContent(ids, flexmessage.ElementText, keyword)}
	} else {
		reply.Text = keyword
	}
	reply.Normalize()
	return reply
}

func TestKeywordMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordMemoryRepository()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	reply := newReply("k1", "test", domain.MessageTypeText, now)
	require.NoError(t, repo.CreateKeyword(ctx, reply))

	err := repo.CreateKeyword(ctx, reply)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	got, err := repo.GetKeyword(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, reply, got)
	assert.NotSame(t, reply, got)

	got.Text = "changed"
	require.NoError(t, repo.UpdateKeyword(ctx, got))
	again, err := repo.GetKeyword(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "changed", again.Text)

	require.NoError(t, repo.DeleteKeyword(ctx, "k1"))
	_, err = repo.GetKeyword(ctx, "k1")
	assert.True(t, domain.IsNotFound(err))
}

func TestKeywordMemoryRepository_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordMemoryRepository()

	assert.True(t, domain.IsNotFound(repo.UpdateKeyword(ctx, &domain.KeywordReply{ID: "nope"})))
	assert.True(t, domain.IsNotFound(repo.DeleteKeyword(ctx, "nope")))
}

func TestKeywordMemoryRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordMemoryRepository()

	reply := newReply("k1", "Derek", domain.MessageTypeFlex, time.Now())
	require.NoError(t, repo.CreateKeyword(ctx, reply))

	reply.Keywords[0] = "mutated"
	reply.Flex[flexmessage.SectionBody] = nil

	got, err := repo.GetKeyword(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Derek"}, got.Keywords)
	assert.Len(t, got.Flex[flexmessage.SectionBody], 1)
}

func TestKeywordMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordMemoryRepository()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateKeyword(ctx, newReply("k3", "hello world", domain.MessageTypeFlex, base.Add(2*time.Minute))))
	require.NoError(t, repo.CreateKeyword(ctx, newReply("k1", "test", domain.MessageTypeText, base)))
	require.NoError(t, repo.CreateKeyword(ctx, newReply("k2", "test sticker", domain.MessageTypeText, base.Add(time.Minute))))

	all, err := repo.ListKeywords(ctx, domain.KeywordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"k1", "k2", "k3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	tests, err := repo.ListKeywords(ctx, domain.KeywordFilter{Query: "test"})
	require.NoError(t, err)
	assert.Len(t, tests, 2)

	flex, err := repo.ListKeywords(ctx, domain.KeywordFilter{MessageType: domain.MessageTypeFlex})
	require.NoError(t, err)
	require.Len(t, flex, 1)
	assert.Equal(t, "FLEX", flex[0].Category)
}

func TestKeywordMemoryRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordMemoryRepository()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = repo.CreateKeyword(ctx, newReply(id, id, domain.MessageTypeText, now))
			_, _ = repo.ListKeywords(ctx, domain.KeywordFilter{})
		}(i)
	}
	wg.Wait()

	all, err := repo.ListKeywords(ctx, domain.KeywordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
