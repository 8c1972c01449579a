package ai

import (
	"context"
	"fmt"
	"sync"

	"globaled/models"
)

// ConversationStore holds each user's conversations, newest first.
type ConversationStore interface {
	List(ctx context.Context, userID int) ([]models.Conversation, error)
	// Get returns ErrConversationNotFound for unknown ids.
	Get(ctx context.Context, userID int, convID string) (*models.Conversation, error)
	// Save replaces an existing conversation in place or inserts a new one at the front.
	Save(ctx context.Context, userID int, conv *models.Conversation) error
}

func cloneConversation(conv *models.Conversation) models.Conversation {
	cp := *conv
	cp.Messages = append([]models.Message(nil), conv.Messages...)
	return cp
}

// MemoryConversationStore keeps conversations for the lifetime of the process.
type MemoryConversationStore struct {
	mu    sync.RWMutex
	convs map[int][]models.Conversation
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{convs: make(map[int][]models.Conversation)}
}

func (s *MemoryConversationStore) List(ctx context.Context, userID int) ([]models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Conversation, 0, len(s.convs[userID]))
	for i := range s.convs[userID] {
		out = append(out, cloneConversation(&s.convs[userID][i]))
	}
	return out, nil
}

func (s *MemoryConversationStore) Get(ctx context.Context, userID int, convID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.convs[userID] {
		if s.convs[userID][i].ID == convID {
			cp := cloneConversation(&s.convs[userID][i])
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("conversation %s: %w", convID, ErrConversationNotFound)
}

func (s *MemoryConversationStore) Save(ctx context.Context, userID int, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneConversation(conv)
	list := s.convs[userID]
	for i := range list {
		if list[i].ID == conv.ID {
			list[i] = cp
			return nil
		}
	}
	s.convs[userID] = append([]models.Conversation{cp}, list...)
	return nil
}
