package models

import "time"

// MessageRole is the author of a conversation message.
type MessageRole string

const (
	MessageRoleUser  MessageRole = "user"
	MessageRoleModel MessageRole = "model"
)

// AnalysisKind selects the writing analysis prompt.
type AnalysisKind string

const (
	AnalysisGrammar     AnalysisKind = "grammar"
	AnalysisOriginality AnalysisKind = "originality"
)

// Valid reports whether k is a known analysis kind.
func (k AnalysisKind) Valid() bool {
	return k == AnalysisGrammar || k == AnalysisOriginality
}

type AnalysisResult struct {
	Type   AnalysisKind `json:"type"`
	Result string       `json:"result"`
}

// Message is a single turn in an AI conversation.
type Message struct {
	Role                 MessageRole     `json:"role"`
	Text                 string          `json:"text"`
	IsAnalyzing          bool            `json:"isAnalyzing,omitempty"`
	Analysis             *AnalysisResult `json:"analysisResult,omitempty"`
	MentorRecommendation *Mentor         `json:"mentorRecommendation,omitempty"`
}

// Conversation is an ordered, append-only list of messages.
type Conversation struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Messages         []Message `json:"messages"`
	AwaitingResponse bool      `json:"awaitingResponse"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ConversationSummary is the sidebar view of a conversation.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatReply is returned by a non-streaming send. Notice carries the transient
// error banner text when the generator call failed.
type ChatReply struct {
	Conversation *Conversation `json:"conversation"`
	Reply        Message       `json:"reply"`
	Notice       string        `json:"notice,omitempty"`
}
