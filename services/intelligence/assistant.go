// File: services/intelligence/assistant.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"globaled/models"
	"globaled/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAIService implements AIService. A conversation is idle until a send or
// analysis marks it busy; it returns to idle when that call completes or fails.
type DefaultAIService struct {
	generator Generator
	store     ConversationStore
	mentors   MentorCatalog
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time

	mu   sync.Mutex
	busy map[string]bool
}

// NewDefaultAIService wires the assistant. A nil generator leaves the service
// unconfigured: every send fails with ErrAINotConfigured without a network call.
func NewDefaultAIService(generator Generator, store ConversationStore, mentors MentorCatalog, logger *zap.Logger, timeout time.Duration) *DefaultAIService {
	return &DefaultAIService{
		generator: generator,
		store:     store,
		mentors:   mentors,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
		busy:      make(map[string]bool),
	}
}

func (s *DefaultAIService) Configured() bool {
	return s.generator != nil
}

func busyKey(userID int, convID string) string {
	return fmt.Sprintf("%d:%s", userID, convID)
}

func (s *DefaultAIService) acquire(userID int, convID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := busyKey(userID, convID)
	if s.busy[key] {
		return false
	}
	s.busy[key] = true
	return true
}

func (s *DefaultAIService) release(userID int, convID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, busyKey(userID, convID))
}

func (s *DefaultAIService) isBusy(userID int, convID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[busyKey(userID, convID)]
}

func (s *DefaultAIService) ListConversations(ctx context.Context, userID int) ([]models.ConversationSummary, error) {
	convs, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}
	out := make([]models.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		out = append(out, models.ConversationSummary{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt})
	}
	return out, nil
}

func (s *DefaultAIService) GetConversation(ctx context.Context, userID int, convID string) (*models.Conversation, error) {
	conv, err := s.store.Get(ctx, userID, convID)
	if err != nil {
		return nil, err
	}
	conv.AwaitingResponse = s.isBusy(userID, convID)
	return conv, nil
}

func (s *DefaultAIService) NewConversation(ctx context.Context, userID int, lang string) (*models.Conversation, error) {
	now := s.now()
	conv := &models.Conversation{
		ID:    uuid.New().String(),
		Title: newChatTitle,
		Messages: []models.Message{
			{Role: models.MessageRoleModel, Text: greeting(NormalizeLang(lang))},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, userID, conv); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}
	return conv, nil
}

// begin validates a send and appends the user message. The caller owns the busy
// flag on success and must release it.
func (s *DefaultAIService) begin(ctx context.Context, userID int, convID, text string) (*models.Conversation, []Turn, error) {
	if s.generator == nil {
		return nil, nil, ErrAINotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrEmptyMessage
	}
	if !s.acquire(userID, convID) {
		return nil, nil, ErrConversationBusy
	}
	conv, err := s.store.Get(ctx, userID, convID)
	if err != nil {
		s.release(userID, convID)
		return nil, nil, err
	}

	history := make([]Turn, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		history = append(history, Turn{Role: m.Role, Text: m.Text})
	}
	conv.Messages = append(conv.Messages, models.Message{Role: models.MessageRoleUser, Text: text})
	conv.UpdatedAt = s.now()
	return conv, history, nil
}

func (s *DefaultAIService) catalog(ctx context.Context) []models.Mentor {
	if s.mentors == nil {
		return nil
	}
	catalog, err := s.mentors.Catalog(ctx)
	if err != nil {
		s.logger.Warn("Mentor catalog unavailable, sending without recommendations", zap.Error(err))
		return nil
	}
	return catalog
}

func (s *DefaultAIService) save(ctx context.Context, userID int, conv *models.Conversation) {
	conv.UpdatedAt = s.now()
	if err := s.store.Save(context.WithoutCancel(ctx), userID, conv); err != nil {
		s.logger.Error("Failed to save conversation", zap.String("conversation", conv.ID), zap.Error(err))
	}
}

// SendMessage appends the user's message, asks the generator for a structured
// reply and appends it. Generator failures become a fallback reply plus a Notice.
func (s *DefaultAIService) SendMessage(ctx context.Context, userID int, convID, text, lang string) (*models.ChatReply, error) {
	lang = NormalizeLang(lang)
	conv, history, err := s.begin(ctx, userID, convID, text)
	if err != nil {
		return nil, err
	}
	defer s.release(userID, convID)
	s.save(ctx, userID, conv)

	catalog := s.catalog(ctx)
	req := GenerateRequest{
		SystemInstruction: systemInstruction(lang),
		History:           history,
		Prompt:            recommendationPrompt(catalog, text),
		Structured:        true,
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	started := time.Now()
	raw, err := s.generator.Generate(callCtx, req)

	reply := models.Message{Role: models.MessageRoleModel}
	notice := ""
	if err != nil {
		utils.RecordAICall("chat", "error", started)
		s.logger.Error("Error generating content", zap.String("conversation", convID), zap.Error(err))
		reply.Text = fallbackReply(lang)
		notice = errorNotice(lang)
	} else {
		utils.RecordAICall("chat", "ok", started)
		replyText, mentorID := parseStructuredReply(raw)
		reply.Text = replyText
		reply.MentorRecommendation = findMentor(catalog, mentorID)
		if conv.Title == newChatTitle {
			conv.Title = titleFrom(text)
		}
	}

	conv.Messages = append(conv.Messages, reply)
	s.save(ctx, userID, conv)
	return &models.ChatReply{Conversation: conv, Reply: reply, Notice: notice}, nil
}

// StreamMessage appends the user's message and an empty model message, then fills
// the model message chunk by chunk in the background. Progress is published on
// the returned handle.
func (s *DefaultAIService) StreamMessage(ctx context.Context, userID int, convID, text, lang string) (*PendingMessage, error) {
	lang = NormalizeLang(lang)
	conv, history, err := s.begin(ctx, userID, convID, text)
	if err != nil {
		return nil, err
	}
	conv.Messages = append(conv.Messages, models.Message{Role: models.MessageRoleModel})
	s.save(ctx, userID, conv)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	pm := newPendingMessage(callCtx, convID, len(conv.Messages)-1)
	req := GenerateRequest{
		SystemInstruction: systemInstruction(lang),
		History:           history,
		Prompt:            text,
	}

	go func() {
		defer cancel()
		defer s.release(userID, convID)
		s.runStream(pm, userID, conv, req, lang)
	}()
	return pm, nil
}

func (s *DefaultAIService) runStream(pm *PendingMessage, userID int, conv *models.Conversation, req GenerateRequest, lang string) {
	started := time.Now()
	err := s.generator.GenerateStream(pm.ctx, req, func(chunk string) error {
		if err := pm.appendChunk(chunk); err != nil {
			return err
		}
		conv.Messages[pm.Index].Text = pm.Text()
		s.save(pm.ctx, userID, conv)
		return nil
	})

	if err != nil {
		utils.RecordAICall("stream", "error", started)
		s.logger.Error("Error streaming content", zap.String("conversation", conv.ID), zap.Error(err))
		if conv.Messages[pm.Index].Text == "" {
			conv.Messages[pm.Index].Text = fallbackReply(lang)
		} else {
			conv.Messages = append(conv.Messages, models.Message{Role: models.MessageRoleModel, Text: fallbackReply(lang)})
		}
		s.save(pm.ctx, userID, conv)
		pm.finish(StreamEvent{Type: StreamError, Text: pm.Text(), Notice: errorNotice(lang)})
		return
	}

	utils.RecordAICall("stream", "ok", started)
	if conv.Title == newChatTitle {
		conv.Title = titleFrom(req.Prompt)
	}
	s.save(pm.ctx, userID, conv)
	pm.finish(StreamEvent{Type: StreamDone, Text: pm.Text()})
}

// RequestAnalysis runs a grammar or originality check on the first message whose
// text equals messageText and attaches the result to it.
func (s *DefaultAIService) RequestAnalysis(ctx context.Context, userID int, convID, messageText string, kind models.AnalysisKind) (*models.Message, error) {
	if s.generator == nil {
		return nil, ErrAINotConfigured
	}
	if !kind.Valid() {
		return nil, ErrInvalidAnalysisKind
	}
	if !s.acquire(userID, convID) {
		return nil, ErrConversationBusy
	}
	defer s.release(userID, convID)

	conv, err := s.store.Get(ctx, userID, convID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, m := range conv.Messages {
		if m.Text == messageText {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.logger.Debug("Analysis target not found", zap.String("conversation", convID))
		return nil, nil
	}

	conv.Messages[idx].IsAnalyzing = true
	conv.Messages[idx].Analysis = nil
	s.save(ctx, userID, conv)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	started := time.Now()
	result, err := s.generator.Generate(callCtx, GenerateRequest{Prompt: analysisPrompt(kind, messageText)})
	if err != nil {
		utils.RecordAICall("analysis", "error", started)
		s.logger.Error("Analysis error", zap.String("conversation", convID), zap.String("kind", string(kind)), zap.Error(err))
		result = analysisFailed
	} else {
		utils.RecordAICall("analysis", "ok", started)
	}

	conv.Messages[idx].IsAnalyzing = false
	conv.Messages[idx].Analysis = &models.AnalysisResult{Type: kind, Result: result}
	s.save(ctx, userID, conv)

	msg := conv.Messages[idx]
	return &msg, nil
}

// AnalyzeText is the standalone writing studio check; it does not touch any conversation.
func (s *DefaultAIService) AnalyzeText(ctx context.Context, text string, kind models.AnalysisKind) (*models.Message, error) {
	if s.generator == nil {
		return nil, ErrAINotConfigured
	}
	if !kind.Valid() {
		return nil, ErrInvalidAnalysisKind
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	started := time.Now()
	result, err := s.generator.Generate(callCtx, GenerateRequest{Prompt: writingPrompt(kind, text)})
	if err != nil {
		utils.RecordAICall("writing", "error", started)
		s.logger.Error("Error analyzing text", zap.String("kind", string(kind)), zap.Error(err))
		return &models.Message{Role: models.MessageRoleModel, Text: writingFailed}, nil
	}
	utils.RecordAICall("writing", "ok", started)
	return &models.Message{
		Role:     models.MessageRoleModel,
		Analysis: &models.AnalysisResult{Type: kind, Result: result},
	}, nil
}

// Seed stores prepared conversations for a user, oldest first so the last one ends up on top.
func (s *DefaultAIService) Seed(ctx context.Context, userID int, convs []models.Conversation) error {
	for i := len(convs) - 1; i >= 0; i-- {
		conv := convs[i]
		if err := s.store.Save(ctx, userID, &conv); err != nil {
			return fmt.Errorf("seed conversation %s: %w", conv.ID, err)
		}
	}
	return nil
}
