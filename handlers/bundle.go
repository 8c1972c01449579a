// File: globaled/handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Session   *SessionHandler
	Mentor    *MentorHandler
	Payment   *PaymentHandler
	AI        *AIHandler
	Community *CommunityHandler
	Chat      *ChatHandler
}
