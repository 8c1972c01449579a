package models

// ChatMessage is a direct message between a student and a mentor.
type ChatMessage struct {
	SenderID  int    `json:"senderId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
