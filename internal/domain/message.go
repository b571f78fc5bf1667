package domain

import "time"

// OutboundMessage is a message the agent decided to send to a user.
type OutboundMessage struct {
	ID        int64         `json:"id"`
	UserID    string        `json:"user_id"`
	Channel   Channel       `json:"message_type"`
	Subject   *string       `json:"subject,omitempty"`
	Body      string        `json:"content"`
	Status    MessageStatus `json:"status"`
	SentAt    *time.Time    `json:"sent_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
