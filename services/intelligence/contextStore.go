// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"globaled/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	aiConversationPrefix = "ai:conv:"
	aiConversationIndex  = "ai:convs:"
)

// RedisConversationStore keeps conversations in redis with a sliding TTL. Each
// user has a sorted-set index scored by creation time.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisConversationStore {
	return &RedisConversationStore{client: client, ttl: ttl, logger: logger}
}

func conversationKey(userID int, convID string) string {
	return fmt.Sprintf("%s%d:%s", aiConversationPrefix, userID, convID)
}

func indexKey(userID int) string {
	return fmt.Sprintf("%s%d", aiConversationIndex, userID)
}

func (s *RedisConversationStore) List(ctx context.Context, userID int) ([]models.Conversation, error) {
	ids, err := s.client.ZRevRange(ctx, indexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Conversation{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = conversationKey(userID, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	convs := make([]models.Conversation, 0, len(values))
	var expired []interface{}
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var conv models.Conversation
		if err := json.Unmarshal([]byte(data), &conv); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	if len(expired) > 0 {
		// Stale index entries are retried on the next List.
		if err := s.client.ZRem(ctx, indexKey(userID), expired...).Err(); err != nil {
			s.logger.Debug("conversation store: failed to prune expired index entries",
				zap.Int("userID", userID), zap.Int("count", len(expired)), zap.Error(err))
		}
	}
	return convs, nil
}

func (s *RedisConversationStore) Get(ctx context.Context, userID int, convID string) (*models.Conversation, error) {
	data, err := s.client.Get(ctx, conversationKey(userID, convID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("conversation %s: %w", convID, ErrConversationNotFound)
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *RedisConversationStore) Save(ctx context.Context, userID int, conv *models.Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, conversationKey(userID, conv.ID), b, s.ttl)
		pipe.ZAddNX(ctx, indexKey(userID), &redis.Z{
			Score:  float64(conv.CreatedAt.UnixNano()),
			Member: conv.ID,
		})
		if s.ttl > 0 {
			pipe.Expire(ctx, indexKey(userID), s.ttl)
		}
		return nil
	})
	return err
}
