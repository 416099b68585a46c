package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

// FeedService builds the personal newsfeed from followed clubs.
type FeedService interface {
	Newsfeed(ctx context.Context, userID int64, page, limit int) (*dto.FeedResponse, error)
}

type feedServiceImpl struct {
	followRepo repositories.FollowRepository
	postRepo   repositories.PostRepository
	clubRepo   repositories.ClubRepository
	logger     zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	clubRepo repositories.ClubRepository,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		followRepo: followRepo,
		postRepo:   postRepo,
		clubRepo:   clubRepo,
		logger:     logger,
	}
}

// Newsfeed returns posts from the caller's followed clubs, newest
// first. A user following nothing gets an empty page, not an error.
func (s *feedServiceImpl) Newsfeed(ctx context.Context, userID int64, page, limit int) (*dto.FeedResponse, error) {
	clubIDs, err := s.followRepo.ClubIDsForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to build newsfeed", err)
	}

	if len(clubIDs) == 0 {
		return &dto.FeedResponse{
			Posts:      []dto.PostResponse{},
			Pagination: dto.NewPaginationInfo(page, limit, 0),
		}, nil
	}

	posts, total, err := s.postRepo.ListByClubIDs(ctx, clubIDs, page, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to build newsfeed", err)
	}

	clubNames := map[int64]string{}
	responses := []dto.PostResponse{}
	for _, post := range posts {
		reactions, err := s.postRepo.ReactionsForPost(ctx, post.ID)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to build newsfeed", err)
		}

		resp := dto.ToPostResponse(post,
			idsOrEmpty(reactions[models.ReactionLike]),
			idsOrEmpty(reactions[models.ReactionShare]),
			idsOrEmpty(reactions[models.ReactionInterested]),
			idsOrEmpty(reactions[models.ReactionGoing]),
		)

		name, ok := clubNames[post.ClubID]
		if !ok {
			club, err := s.clubRepo.GetByID(ctx, post.ClubID)
			if err == nil && club != nil {
				name = club.Name
			}
			clubNames[post.ClubID] = name
		}
		resp.ClubName = name

		responses = append(responses, resp)
	}

	return &dto.FeedResponse{
		Posts:      responses,
		Pagination: dto.NewPaginationInfo(page, limit, total),
	}, nil
}
