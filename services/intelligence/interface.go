package ai

import (
	"context"
	"errors"

	"globaled/models"
)

var (
	ErrAINotConfigured      = errors.New("ai assistant is not configured")
	ErrConversationBusy     = errors.New("conversation is awaiting a response")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrInvalidAnalysisKind  = errors.New("analysis type must be grammar or originality")
)

// Turn is one prior message sent to the generator as history.
type Turn struct {
	Role models.MessageRole
	Text string
}

// GenerateRequest is a single call to the text generation service.
type GenerateRequest struct {
	SystemInstruction string
	History           []Turn
	Prompt            string
	// Structured asks for a JSON object {response, recommendedMentorId}.
	Structured bool
}

// Generator is the external generative-text service.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// GenerateStream calls onChunk for every text chunk in arrival order. An error
	// returned by onChunk stops the stream and is returned.
	GenerateStream(ctx context.Context, req GenerateRequest, onChunk func(chunk string) error) error
}

// MentorCatalog supplies the mentors the assistant may recommend.
type MentorCatalog interface {
	Catalog(ctx context.Context) ([]models.Mentor, error)
}

// AIService manages assistant conversations for a user.
type AIService interface {
	// Configured is false when no generator credential was supplied.
	Configured() bool
	ListConversations(ctx context.Context, userID int) ([]models.ConversationSummary, error)
	GetConversation(ctx context.Context, userID int, convID string) (*models.Conversation, error)
	NewConversation(ctx context.Context, userID int, lang string) (*models.Conversation, error)
	SendMessage(ctx context.Context, userID int, convID, text, lang string) (*models.ChatReply, error)
	StreamMessage(ctx context.Context, userID int, convID, text, lang string) (*PendingMessage, error)
	// RequestAnalysis returns nil, nil when no message has exactly messageText.
	RequestAnalysis(ctx context.Context, userID int, convID, messageText string, kind models.AnalysisKind) (*models.Message, error)
	AnalyzeText(ctx context.Context, text string, kind models.AnalysisKind) (*models.Message, error)
}
