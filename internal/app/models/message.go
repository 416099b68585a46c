package models

import "time"

// Message is a direct chat message between two friends.
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"senderId"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	Media       []string  `json:"media"`
	CreatedAt   time.Time `json:"createdAt"`
}
