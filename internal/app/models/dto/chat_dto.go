package dto

import (
	"time"

	"github.com/campuslink/clubnet/internal/app/models"
)

// SendMessageRequest is a direct message payload.
type SendMessageRequest struct {
	Content string `form:"content" json:"content" binding:"required"`
}

// MessageResponse is the public projection of a chat message.
type MessageResponse struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"senderId"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	Media       []string  `json:"media"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToMessageResponse maps a message model.
func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Media:       m.Media,
		CreatedAt:   m.CreatedAt,
	}
}

// ChatHistoryResponse is the conversation with one friend, oldest
// first.
type ChatHistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
}
