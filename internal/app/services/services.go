package services

import (
	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/auth"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
)

// Services holds all the service instances.
type Services struct {
	UserService   UserService
	ClubService   ClubService
	FriendService FriendService
	PostService   PostService
	FeedService   FeedService
	SearchService SearchService
	ChatService   ChatService
}

// NewServices initializes all services.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		UserService: NewUserService(
			repos.UserRepository, jwtService, fileStorage,
			logger.With().Str("service", "user").Logger()),
		ClubService: NewClubService(
			repos.ClubRepository, repos.FollowRepository, repos.UserRepository,
			repos.PostRepository, fileStorage,
			logger.With().Str("service", "club").Logger()),
		FriendService: NewFriendService(
			repos.FriendRepository, repos.UserRepository,
			logger.With().Str("service", "friend").Logger()),
		PostService: NewPostService(
			repos.PostRepository, repos.ClubRepository, repos.UserRepository,
			fileStorage,
			logger.With().Str("service", "post").Logger()),
		FeedService: NewFeedService(
			repos.FollowRepository, repos.PostRepository, repos.ClubRepository,
			logger.With().Str("service", "feed").Logger()),
		SearchService: NewSearchService(
			repos.UserRepository, repos.ClubRepository, repos.PostRepository,
			repos.FollowRepository,
			logger.With().Str("service", "search").Logger()),
		ChatService: NewChatService(
			repos.MessageRepository, repos.FriendRepository,
			logger.With().Str("service", "chat").Logger()),
	}
}
