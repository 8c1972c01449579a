package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chatRepo "globaled/database/repository/chat"
	userRepo "globaled/database/repository/user"
	"globaled/models"

	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrSelfChat     = errors.New("cannot chat with yourself")
)

const timestampLayout = "15:04"

// ChatService carries direct messages between a student and a mentor.
type ChatService interface {
	History(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error)
	Send(ctx context.Context, fromID, toID int, text string) (models.ChatMessage, error)
}

type DefaultChatService struct {
	Repo   chatRepo.ChatRepository
	Users  userRepo.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewChatService(logger *zap.Logger, repo chatRepo.ChatRepository, users userRepo.UserRepository) *DefaultChatService {
	return &DefaultChatService{Repo: repo, Users: users, logger: logger, now: time.Now}
}

func (s *DefaultChatService) checkPeer(ctx context.Context, userID, peerID int) error {
	if userID == peerID {
		return ErrSelfChat
	}
	if _, err := s.Users.GetByID(ctx, peerID); err != nil {
		return err
	}
	return nil
}

func (s *DefaultChatService) History(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error) {
	if err := s.checkPeer(ctx, userID, peerID); err != nil {
		return nil, err
	}
	return s.Repo.History(ctx, userID, peerID)
}

func (s *DefaultChatService) Send(ctx context.Context, fromID, toID int, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	if err := s.checkPeer(ctx, fromID, toID); err != nil {
		return models.ChatMessage{}, err
	}

	msg := models.ChatMessage{SenderID: fromID, Text: text, Timestamp: s.now().Format(timestampLayout)}
	if err := s.Repo.Append(ctx, fromID, toID, msg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to store message: %w", err)
	}
	s.logger.Debug("Chat message sent", zap.String("thread", chatRepo.ThreadKey(fromID, toID)))
	return msg, nil
}
