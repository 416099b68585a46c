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

// Search filters.
const (
	SearchFilterAll  = "all"
	SearchFilterUser = "user"
	SearchFilterClub = "club"
	SearchFilterPost = "post"
)

// SearchService runs cross-entity search over users, clubs and posts.
type SearchService interface {
	Search(ctx context.Context, query, filter string) (*dto.SearchResponse, error)
}

type searchServiceImpl struct {
	userRepo   repositories.UserRepository
	clubRepo   repositories.ClubRepository
	postRepo   repositories.PostRepository
	followRepo repositories.FollowRepository
	logger     zerolog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	userRepo repositories.UserRepository,
	clubRepo repositories.ClubRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
	logger zerolog.Logger,
) SearchService {
	return &searchServiceImpl{
		userRepo:   userRepo,
		clubRepo:   clubRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

// Search runs the query against the entity kinds selected by filter.
// An empty filter means all.
func (s *searchServiceImpl) Search(ctx context.Context, query, filter string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("Search query cannot be empty")
	}

	if filter == "" {
		filter = SearchFilterAll
	}
	switch filter {
	case SearchFilterAll, SearchFilterUser, SearchFilterClub, SearchFilterPost:
	default:
		return nil, apperrors.NewValidationError("Filter must be one of: all, user, club, post")
	}

	result := &dto.SearchResponse{}

	if filter == SearchFilterAll || filter == SearchFilterUser {
		users, err := s.userRepo.Search(ctx, query)
		if err != nil {
			return nil, apperrors.NewInternalError("Search failed", err)
		}
		result.Users = dto.ToUserResponses(users)
	}

	if filter == SearchFilterAll || filter == SearchFilterClub {
		clubs, err := s.clubRepo.Search(ctx, query)
		if err != nil {
			return nil, apperrors.NewInternalError("Search failed", err)
		}
		result.Clubs = []dto.ClubResponse{}
		for _, club := range clubs {
			followers, err := s.followRepo.CountForClub(ctx, club.ID)
			if err != nil {
				followers = 0
			}
			result.Clubs = append(result.Clubs, dto.ToClubResponse(club, followers))
		}
	}

	if filter == SearchFilterAll || filter == SearchFilterPost {
		posts, err := s.postRepo.Search(ctx, query)
		if err != nil {
			return nil, apperrors.NewInternalError("Search failed", err)
		}
		result.Posts = []dto.PostResponse{}
		for _, post := range posts {
			reactions, err := s.postRepo.ReactionsForPost(ctx, post.ID)
			if err != nil {
				return nil, apperrors.NewInternalError("Search failed", err)
			}
			result.Posts = append(result.Posts, dto.ToPostResponse(post,
				idsOrEmpty(reactions[models.ReactionLike]),
				idsOrEmpty(reactions[models.ReactionShare]),
				idsOrEmpty(reactions[models.ReactionInterested]),
				idsOrEmpty(reactions[models.ReactionGoing]),
			))
		}
	}

	return result, nil
}
