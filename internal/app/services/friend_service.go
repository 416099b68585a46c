package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

// FriendService defines the interface for the friend request
// lifecycle and the friends relation.
type FriendService interface {
	SendRequest(ctx context.Context, requesterID, recipientID int64) (*dto.FriendRequestResponse, error)
	AcceptRequest(ctx context.Context, requestID, callerID int64) error
	RejectRequest(ctx context.Context, requestID, callerID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListRequests(ctx context.Context, userID int64) (*dto.FriendRequestListResponse, error)
	ListFriends(ctx context.Context, userID int64) (*dto.FriendListResponse, error)
}

type friendServiceImpl struct {
	friendRepo repositories.FriendRepository
	userRepo   repositories.UserRepository
	logger     zerolog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(
	friendRepo repositories.FriendRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) FriendService {
	return &friendServiceImpl{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// SendRequest creates a pending request. It is rejected when the pair
// is already friends or when a pending request exists in either
// direction.
func (s *friendServiceImpl) SendRequest(ctx context.Context, requesterID, recipientID int64) (*dto.FriendRequestResponse, error) {
	if requesterID == recipientID {
		return nil, apperrors.NewValidationError("You cannot send a friend request to yourself")
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to send friend request", err)
	}
	if recipient == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	friends, err := s.friendRepo.AreFriends(ctx, requesterID, recipientID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to send friend request", err)
	}
	if friends {
		return nil, apperrors.NewDuplicateError("You are already friends with this user")
	}

	pending, err := s.friendRepo.PendingBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to send friend request", err)
	}
	if pending {
		return nil, apperrors.NewDuplicateError("A friend request between you is already pending")
	}

	request, err := s.friendRepo.CreateRequest(ctx, requesterID, recipientID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to send friend request", err)
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil || requester == nil {
		return nil, apperrors.NewInternalError("Failed to send friend request", err)
	}

	s.logger.Info().
		Int64("requestId", request.ID).
		Int64("requesterId", requesterID).
		Int64("recipientId", recipientID).
		Msg("Friend request sent")

	return &dto.FriendRequestResponse{
		ID:        request.ID,
		Requester: dto.ToUserResponse(requester),
		Recipient: dto.ToUserResponse(recipient),
		CreatedAt: request.CreatedAt,
	}, nil
}

// AcceptRequest resolves a pending request into a friendship. The
// request is visible only to its recipient; anyone else gets the same
// not-found as for a request that never existed.
func (s *friendServiceImpl) AcceptRequest(ctx context.Context, requestID, callerID int64) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return apperrors.NewInternalError("Failed to accept friend request", err)
	}
	if request == nil {
		return apperrors.NewNotFoundError("Friend request not found")
	}
	if request.RecipientID != callerID {
		return apperrors.NewNotFoundError("Friend request not found")
	}

	if err := s.friendRepo.AddFriendship(ctx, request.ID, request.RequesterID, request.RecipientID); err != nil {
		return apperrors.NewInternalError("Failed to accept friend request", err)
	}

	s.logger.Info().
		Int64("requestId", requestID).
		Int64("requesterId", request.RequesterID).
		Int64("recipientId", request.RecipientID).
		Msg("Friend request accepted")
	return nil
}

// RejectRequest discards a pending request; the requester can send
// again later. Like AcceptRequest, only the recipient sees it.
func (s *friendServiceImpl) RejectRequest(ctx context.Context, requestID, callerID int64) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return apperrors.NewInternalError("Failed to reject friend request", err)
	}
	if request == nil {
		return apperrors.NewNotFoundError("Friend request not found")
	}
	if request.RecipientID != callerID {
		return apperrors.NewNotFoundError("Friend request not found")
	}

	if err := s.friendRepo.DeleteRequest(ctx, requestID); err != nil {
		return apperrors.NewInternalError("Failed to reject friend request", err)
	}

	s.logger.Info().Int64("requestId", requestID).Msg("Friend request rejected")
	return nil
}

// RemoveFriend dissolves an existing friendship for both sides.
func (s *friendServiceImpl) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	friends, err := s.friendRepo.AreFriends(ctx, userID, friendID)
	if err != nil {
		return apperrors.NewInternalError("Failed to remove friend", err)
	}
	if !friends {
		return apperrors.NewNotFoundError("You are not friends with this user")
	}

	if err := s.friendRepo.RemoveFriendship(ctx, userID, friendID); err != nil {
		return apperrors.NewInternalError("Failed to remove friend", err)
	}

	s.logger.Info().Int64("userId", userID).Int64("friendId", friendID).Msg("Friendship removed")
	return nil
}

// ListRequests returns the caller's pending requests, split by
// direction.
func (s *friendServiceImpl) ListRequests(ctx context.Context, userID int64) (*dto.FriendRequestListResponse, error) {
	incoming, err := s.friendRepo.ListIncoming(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list friend requests", err)
	}
	outgoing, err := s.friendRepo.ListOutgoing(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list friend requests", err)
	}

	incomingResp, err := s.decorateRequests(ctx, incoming)
	if err != nil {
		return nil, err
	}
	outgoingResp, err := s.decorateRequests(ctx, outgoing)
	if err != nil {
		return nil, err
	}

	return &dto.FriendRequestListResponse{
		Incoming: incomingResp,
		Outgoing: outgoingResp,
	}, nil
}

func (s *friendServiceImpl) ListFriends(ctx context.Context, userID int64) (*dto.FriendListResponse, error) {
	ids, err := s.friendRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list friends", err)
	}

	friends, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list friends", err)
	}

	return &dto.FriendListResponse{Friends: dto.ToUserResponses(friends)}, nil
}

func (s *friendServiceImpl) decorateRequests(ctx context.Context, requests []*models.FriendRequest) ([]dto.FriendRequestResponse, error) {
	responses := []dto.FriendRequestResponse{}
	for _, request := range requests {
		requester, err := s.userRepo.GetByID(ctx, request.RequesterID)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to list friend requests", err)
		}
		recipient, err := s.userRepo.GetByID(ctx, request.RecipientID)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to list friend requests", err)
		}
		if requester == nil || recipient == nil {
			continue
		}
		responses = append(responses, dto.FriendRequestResponse{
			ID:        request.ID,
			Requester: dto.ToUserResponse(requester),
			Recipient: dto.ToUserResponse(recipient),
			CreatedAt: request.CreatedAt,
		})
	}
	return responses, nil
}
