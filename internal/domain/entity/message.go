package entity

import "time"

// Message advisor question and answer
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Text      string    `json:"text"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext suhbat kontekstini saqlash uchun
type ChatContext struct {
	SessionID string
	Messages  []Message
	LastUsed  time.Time
}
