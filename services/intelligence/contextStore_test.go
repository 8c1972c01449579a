package ai

import (
	"context"
	"testing"
	"time"

	"globaled/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisConversationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisConversationStore(client, ttl, zap.NewNop()), mr
}

func testConversation(id string, created time.Time) *models.Conversation {
	return &models.Conversation{
		ID:        id,
		Title:     "Conversation " + id,
		Messages:  []models.Message{{Role: models.MessageRoleUser, Text: "Hello"}},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestRedisStoreSaveAndGet(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testUser, testConversation("a", created)))

	got, err := store.Get(ctx, testUser, "a")
	require.NoError(t, err)
	assert.Equal(t, "Conversation a", got.Title)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Hello", got.Messages[0].Text)
	assert.True(t, got.CreatedAt.Equal(created))

	// Other users do not see it.
	_, err = store.Get(ctx, testUser+1, "a")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRedisStoreGetUnknown(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	_, err := store.Get(context.Background(), testUser, "missing")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRedisStoreListNewestFirst(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	empty, err := store.List(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Save(ctx, testUser, testConversation("old", base)))
	require.NoError(t, store.Save(ctx, testUser, testConversation("new", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(ctx, testUser, testConversation("mid", base.Add(time.Hour))))

	// Re-saving keeps the original position.
	updated := testConversation("old", base)
	updated.Title = "Renamed"
	require.NoError(t, store.Save(ctx, testUser, updated))

	convs, err := store.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, "new", convs[0].ID)
	assert.Equal(t, "mid", convs[1].ID)
	assert.Equal(t, "old", convs[2].ID)
	assert.Equal(t, "Renamed", convs[2].Title)
}

func TestRedisStoreListPrunesExpired(t *testing.T) {
	const ttl = time.Minute
	store, mr := newTestRedisStore(t, ttl)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testUser, testConversation("stale", base)))
	mr.FastForward(ttl / 2)
	// The second save refreshes the index TTL but not the first conversation's.
	require.NoError(t, store.Save(ctx, testUser, testConversation("fresh", base.Add(time.Hour))))
	mr.FastForward(ttl/2 + time.Second)

	assert.False(t, mr.Exists(conversationKey(testUser, "stale")))
	members, err := mr.ZMembers(indexKey(testUser))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"stale", "fresh"}, members)

	convs, err := store.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "fresh", convs[0].ID)

	members, err = mr.ZMembers(indexKey(testUser))
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, members)

	_, err = store.Get(ctx, testUser, "stale")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRedisStoreIndexExpiresWithConversations(t *testing.T) {
	const ttl = time.Minute
	store, mr := newTestRedisStore(t, ttl)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testUser, testConversation("a", time.Now())))
	mr.FastForward(ttl)

	assert.False(t, mr.Exists(indexKey(testUser)))
	convs, err := store.List(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
