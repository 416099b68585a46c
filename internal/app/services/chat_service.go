package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

const chatHistoryLimit = 200

// ChatService handles direct messaging between friends.
type ChatService interface {
	SendMessage(ctx context.Context, senderID, recipientID int64, content string, mediaPaths []string) (*dto.MessageResponse, error)
	History(ctx context.Context, userID, friendID int64) (*dto.ChatHistoryResponse, error)
}

type chatServiceImpl struct {
	messageRepo repositories.MessageRepository
	friendRepo  repositories.FriendRepository
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	messageRepo repositories.MessageRepository,
	friendRepo repositories.FriendRepository,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		logger:      logger,
	}
}

// SendMessage persists a message to a friend. The message is stored
// before any realtime delivery so history never loses it.
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID, recipientID int64, content string, mediaPaths []string) (*dto.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message cannot be empty")
	}

	friends, err := s.friendRepo.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to send message", err)
	}
	if !friends {
		return nil, apperrors.NewForbiddenError("You can only message your friends")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Media:       mediaPaths,
	}
	if message.Media == nil {
		message.Media = []string{}
	}

	if _, err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, apperrors.NewInternalError("Failed to send message", err)
	}

	resp := dto.ToMessageResponse(message)
	return &resp, nil
}

// History returns the conversation with a friend, oldest first.
func (s *chatServiceImpl) History(ctx context.Context, userID, friendID int64) (*dto.ChatHistoryResponse, error) {
	friends, err := s.friendRepo.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve chat history", err)
	}
	if !friends {
		return nil, apperrors.NewForbiddenError("You can only view conversations with your friends")
	}

	messages, err := s.messageRepo.History(ctx, userID, friendID, chatHistoryLimit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve chat history", err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.ToMessageResponse(message))
	}
	return &dto.ChatHistoryResponse{Messages: responses}, nil
}
