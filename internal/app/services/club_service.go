package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/dberrors"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
)

// ClubService defines the interface for club management and the
// follow relation.
type ClubService interface {
	Create(ctx context.Context, creatorID int64, req *dto.CreateClubRequest, imagePath string) (*dto.ClubResponse, error)
	GetByID(ctx context.Context, clubID int64) (*dto.ClubResponse, error)
	List(ctx context.Context, page, limit int) (*dto.ClubListResponse, error)
	Search(ctx context.Context, query string) ([]dto.ClubResponse, error)
	Update(ctx context.Context, clubID, callerID int64, callerRole models.Role, req *dto.UpdateClubRequest) (*dto.ClubResponse, error)
	UpdateImage(ctx context.Context, clubID, callerID int64, callerRole models.Role, imagePath string) (*dto.ClubResponse, error)
	Delete(ctx context.Context, clubID, callerID int64, callerRole models.Role) error
	Follow(ctx context.Context, userID, clubID int64) error
	Unfollow(ctx context.Context, userID, clubID int64) error
	FollowedClubs(ctx context.Context, userID int64) ([]dto.ClubResponse, error)
}

type clubServiceImpl struct {
	clubRepo    repositories.ClubRepository
	followRepo  repositories.FollowRepository
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo repositories.ClubRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubRepo:    clubRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Create registers a new club with the creator as its only admin.
func (s *clubServiceImpl) Create(ctx context.Context, creatorID int64, req *dto.CreateClubRequest, imagePath string) (*dto.ClubResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Club name cannot be empty")
	}

	exists, err := s.clubRepo.NameExists(ctx, name)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create club", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateError("A club with this name already exists")
	}

	club := &models.Club{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		ClubImage:   imagePath,
	}

	if _, err := s.clubRepo.Create(ctx, club, creatorID); err != nil {
		// NameExists races with concurrent creates; the unique
		// constraint is the real guard.
		if dberrors.IsUniqueViolationOn(err, "name") {
			return nil, apperrors.NewDuplicateError("A club with this name already exists")
		}
		return nil, apperrors.NewInternalError("Failed to create club", err)
	}

	s.logger.Info().Int64("clubId", club.ID).Int64("creatorId", creatorID).Msg("Club created")

	resp := dto.ToClubResponse(club, 0)
	return &resp, nil
}

func (s *clubServiceImpl) GetByID(ctx context.Context, clubID int64) (*dto.ClubResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve club", err)
	}
	if club == nil {
		return nil, apperrors.NewNotFoundError("Club not found")
	}

	resp, err := s.decorate(ctx, club)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *clubServiceImpl) List(ctx context.Context, page, limit int) (*dto.ClubListResponse, error) {
	clubs, total, err := s.clubRepo.List(ctx, page, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list clubs", err)
	}

	responses, err := s.decorateAll(ctx, clubs)
	if err != nil {
		return nil, err
	}

	return &dto.ClubListResponse{
		Clubs:      responses,
		Pagination: dto.NewPaginationInfo(page, limit, total),
	}, nil
}

func (s *clubServiceImpl) Search(ctx context.Context, query string) ([]dto.ClubResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("Search query cannot be empty")
	}

	clubs, err := s.clubRepo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to search clubs", err)
	}
	return s.decorateAll(ctx, clubs)
}

// Update applies a partial club update, including admin set toggles.
// Only a club admin or a site admin may call it.
func (s *clubServiceImpl) Update(ctx context.Context, clubID, callerID int64, callerRole models.Role, req *dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update club", err)
	}
	if club == nil {
		return nil, apperrors.NewNotFoundError("Club not found")
	}

	if err := s.authorize(club, callerID, callerRole); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Club name cannot be empty")
		}
		if name != club.Name {
			exists, err := s.clubRepo.NameExists(ctx, name)
			if err != nil {
				return nil, apperrors.NewInternalError("Failed to update club", err)
			}
			if exists {
				return nil, apperrors.NewDuplicateError("A club with this name already exists")
			}
			club.Name = name
		}
	}
	if req.Description != nil {
		club.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, apperrors.NewInternalError("Failed to update club", err)
	}

	if req.AddAdminID != nil {
		if err := s.addAdmin(ctx, club, *req.AddAdminID); err != nil {
			return nil, err
		}
	}
	if req.RemoveAdminID != nil {
		if err := s.removeAdmin(ctx, club, *req.RemoveAdminID); err != nil {
			return nil, err
		}
	}

	updated, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil || updated == nil {
		return nil, apperrors.NewInternalError("Failed to update club", err)
	}

	resp, err := s.decorate(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *clubServiceImpl) addAdmin(ctx context.Context, club *models.Club, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError("Failed to update club admins", err)
	}
	if user == nil {
		return apperrors.NewNotFoundError("User to promote not found")
	}
	if !user.Role.AtLeast(models.RoleAdmin) {
		return apperrors.NewValidationError("User does not have the admin role")
	}

	if err := s.clubRepo.AddAdmin(ctx, club.ID, userID); err != nil {
		return apperrors.NewInternalError("Failed to update club admins", err)
	}
	return nil
}

func (s *clubServiceImpl) removeAdmin(ctx context.Context, club *models.Club, userID int64) error {
	if !club.HasAdmin(userID) {
		return apperrors.NewNotFoundError("User is not an admin of this club")
	}

	count, err := s.clubRepo.AdminCount(ctx, club.ID)
	if err != nil {
		return apperrors.NewInternalError("Failed to update club admins", err)
	}
	if count <= 1 {
		return apperrors.NewValidationError("A club must keep at least one admin")
	}

	if err := s.clubRepo.RemoveAdmin(ctx, club.ID, userID); err != nil {
		return apperrors.NewInternalError("Failed to update club admins", err)
	}
	return nil
}

// UpdateImage replaces the club image, removing the previous file
// best-effort.
func (s *clubServiceImpl) UpdateImage(ctx context.Context, clubID, callerID int64, callerRole models.Role, imagePath string) (*dto.ClubResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update club image", err)
	}
	if club == nil {
		return nil, apperrors.NewNotFoundError("Club not found")
	}

	if err := s.authorize(club, callerID, callerRole); err != nil {
		return nil, err
	}

	if club.ClubImage != "" {
		if err := s.fileStorage.DeleteFile(club.ClubImage); err != nil {
			s.logger.Warn().Err(err).Str("path", club.ClubImage).Msg("Failed to delete old club image")
		}
	}

	if err := s.clubRepo.UpdateImage(ctx, clubID, imagePath); err != nil {
		return nil, apperrors.NewInternalError("Failed to update club image", err)
	}

	club.ClubImage = imagePath
	resp, err := s.decorate(ctx, club)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a club and all of its posts. Stored media is cleaned
// up best-effort before the rows cascade away.
func (s *clubServiceImpl) Delete(ctx context.Context, clubID, callerID int64, callerRole models.Role) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to delete club", err)
	}
	if club == nil {
		return apperrors.NewNotFoundError("Club not found")
	}

	if err := s.authorize(club, callerID, callerRole); err != nil {
		return err
	}

	media, err := s.postRepo.MediaForClub(ctx, clubID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("clubId", clubID).Msg("Failed to collect club media for cleanup")
		media = nil
	}

	if err := s.clubRepo.Delete(ctx, clubID); err != nil {
		return apperrors.NewInternalError("Failed to delete club", err)
	}

	for _, path := range media {
		if err := s.fileStorage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete club media file")
		}
	}
	if club.ClubImage != "" {
		if err := s.fileStorage.DeleteFile(club.ClubImage); err != nil {
			s.logger.Warn().Err(err).Str("path", club.ClubImage).Msg("Failed to delete club image")
		}
	}

	s.logger.Info().Int64("clubId", clubID).Msg("Club deleted")
	return nil
}

// Follow subscribes the user to a club's posts.
func (s *clubServiceImpl) Follow(ctx context.Context, userID, clubID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to follow club", err)
	}
	if club == nil {
		return apperrors.NewNotFoundError("Club not found")
	}

	following, err := s.followRepo.IsFollowing(ctx, userID, clubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to follow club", err)
	}
	if following {
		return apperrors.NewDuplicateError("You are already following this club")
	}

	if err := s.followRepo.Add(ctx, userID, clubID); err != nil {
		return apperrors.NewInternalError("Failed to follow club", err)
	}
	return nil
}

// Unfollow removes the subscription.
func (s *clubServiceImpl) Unfollow(ctx context.Context, userID, clubID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to unfollow club", err)
	}
	if club == nil {
		return apperrors.NewNotFoundError("Club not found")
	}

	following, err := s.followRepo.IsFollowing(ctx, userID, clubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to unfollow club", err)
	}
	if !following {
		return apperrors.NewNotFoundError("You are not following this club")
	}

	if err := s.followRepo.Remove(ctx, userID, clubID); err != nil {
		return apperrors.NewInternalError("Failed to unfollow club", err)
	}
	return nil
}

func (s *clubServiceImpl) FollowedClubs(ctx context.Context, userID int64) ([]dto.ClubResponse, error) {
	clubIDs, err := s.followRepo.ClubIDsForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve followed clubs", err)
	}

	responses := []dto.ClubResponse{}
	for _, id := range clubIDs {
		club, err := s.clubRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to retrieve followed clubs", err)
		}
		if club == nil {
			continue
		}
		resp, err := s.decorate(ctx, club)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *clubServiceImpl) authorize(club *models.Club, callerID int64, callerRole models.Role) error {
	if callerRole.AtLeast(models.RoleAdmin) {
		return nil
	}
	if !club.HasAdmin(callerID) {
		return apperrors.NewForbiddenError("Only a club admin can manage this club")
	}
	return nil
}

func (s *clubServiceImpl) decorate(ctx context.Context, club *models.Club) (dto.ClubResponse, error) {
	followers, err := s.followRepo.CountForClub(ctx, club.ID)
	if err != nil {
		return dto.ClubResponse{}, apperrors.NewInternalError("Failed to retrieve club", err)
	}
	return dto.ToClubResponse(club, followers), nil
}

func (s *clubServiceImpl) decorateAll(ctx context.Context, clubs []*models.Club) ([]dto.ClubResponse, error) {
	responses := []dto.ClubResponse{}
	for _, club := range clubs {
		resp, err := s.decorate(ctx, club)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
