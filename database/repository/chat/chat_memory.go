package chatRepo

import (
	"context"
	"sync"

	"globaled/models"
)

type MemoryChatRepo struct {
	mu      sync.RWMutex
	threads map[string][]models.ChatMessage
}

func NewMemoryChatRepo(seed map[string][]models.ChatMessage) *MemoryChatRepo {
	threads := make(map[string][]models.ChatMessage, len(seed))
	for k, v := range seed {
		threads[k] = append([]models.ChatMessage(nil), v...)
	}
	return &MemoryChatRepo{threads: threads}
}

func (r *MemoryChatRepo) History(ctx context.Context, userA, userB int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ChatMessage{}, r.threads[ThreadKey(userA, userB)]...), nil
}

func (r *MemoryChatRepo) Append(ctx context.Context, userA, userB int, msg models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ThreadKey(userA, userB)
	r.threads[key] = append(r.threads[key], msg)
	return nil
}
