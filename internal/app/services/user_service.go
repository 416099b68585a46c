package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/auth"
	"github.com/campuslink/clubnet/internal/pkg/dberrors"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
)

// UserService defines the interface for account and profile operations
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	GetByID(ctx context.Context, userID int64) (*dto.UserResponse, error)
	List(ctx context.Context, callerID int64, page, limit int) (*dto.UserListResponse, error)
	Search(ctx context.Context, query string) ([]dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	UpdateProfileImage(ctx context.Context, userID int64, imagePath string) (*dto.UserResponse, error)
	UpdateByAdmin(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteByAdmin(ctx context.Context, userID int64) error
}

type userServiceImpl struct {
	userRepo    repositories.UserRepository
	jwtService  *auth.JWTService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		jwtService:  jwtService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Register creates a new, unverified student account.
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to register", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateError("An account with this email already exists")
	}

	exists, err = s.userRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to register", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateError("An account with this student ID already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to register", err)
	}

	user := &models.User{
		StudentID: req.StudentID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  hashed,
		Role:      models.RoleStudent,
		Verified:  false,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// The existence pre-checks race with concurrent registrations;
		// the unique constraints are the real guard.
		if dberrors.IsUniqueViolationOn(err, "email") {
			return nil, apperrors.NewDuplicateError("An account with this email already exists")
		}
		if dberrors.IsUniqueViolationOn(err, "student_id") {
			return nil, apperrors.NewDuplicateError("An account with this student ID already exists")
		}
		return nil, apperrors.NewInternalError("Failed to register", err)
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Login authenticates a user. Credentials are checked before the
// verification flag so an attacker cannot discover which emails exist.
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if !user.Verified {
		return nil, apperrors.NewUnverifiedError("Account has not been verified yet")
	}

	return s.issueTokens(user)
}

// AdminLogin authenticates a user and additionally requires an
// admin-or-above role.
func (s *userServiceImpl) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if !user.Role.AtLeast(models.RoleAdmin) {
		return nil, apperrors.NewForbiddenError("Administrator access required")
	}
	if !user.Verified {
		return nil, apperrors.NewUnverifiedError("Account has not been verified yet")
	}

	return s.issueTokens(user)
}

func (s *userServiceImpl) authenticate(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to log in", err)
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidCredentials,
			Message: "Invalid email or password",
		}
	}
	return user, nil
}

func (s *userServiceImpl) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to log in", err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to log in", err)
	}

	return &dto.TokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	return s.GetByID(ctx, userID)
}

func (s *userServiceImpl) GetByID(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// List returns all users except the caller, paginated.
func (s *userServiceImpl) List(ctx context.Context, callerID int64, page, limit int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.List(ctx, callerID, page, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list users", err)
	}

	return &dto.UserListResponse{
		Users:      dto.ToUserResponses(users),
		Pagination: dto.NewPaginationInfo(page, limit, total),
	}, nil
}

func (s *userServiceImpl) Search(ctx context.Context, query string) ([]dto.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("Search query cannot be empty")
	}

	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to search users", err)
	}
	return dto.ToUserResponses(users), nil
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError("Failed to change password", err)
	}
	if user == nil {
		return apperrors.NewNotFoundError("User not found")
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.NewValidationError("Current password is incorrect")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.NewInternalError("Failed to change password", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return apperrors.NewInternalError("Failed to change password", err)
	}

	s.logger.Info().Int64("userId", userID).Msg("Password changed")
	return nil
}

// UpdateProfileImage replaces the user's profile image, removing the
// previous file best-effort.
func (s *userServiceImpl) UpdateProfileImage(ctx context.Context, userID int64, imagePath string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update profile image", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if user.ProfileImage != "" {
		if err := s.fileStorage.DeleteFile(user.ProfileImage); err != nil {
			s.logger.Warn().Err(err).Str("path", user.ProfileImage).Msg("Failed to delete old profile image")
		}
	}

	if err := s.userRepo.UpdateProfileImage(ctx, userID, imagePath); err != nil {
		return nil, apperrors.NewInternalError("Failed to update profile image", err)
	}

	user.ProfileImage = imagePath
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateByAdmin applies a partial update to any user.
func (s *userServiceImpl) UpdateByAdmin(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, email)
			if err != nil {
				return nil, apperrors.NewInternalError("Failed to update user", err)
			}
			if exists {
				return nil, apperrors.NewDuplicateError("An account with this email already exists")
			}
			user.Email = email
		}
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperrors.NewValidationError("Unknown role")
		}
		user.Role = *req.Role
	}
	if req.Verified != nil {
		user.Verified = *req.Verified
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.NewInternalError("Failed to update user", err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// DeleteByAdmin removes a user account. Dependent rows (follows,
// friendships, reactions) go with it via FK cascades.
func (s *userServiceImpl) DeleteByAdmin(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError("Failed to delete user", err)
	}
	if user == nil {
		return apperrors.NewNotFoundError("User not found")
	}

	if user.ProfileImage != "" {
		if err := s.fileStorage.DeleteFile(user.ProfileImage); err != nil {
			s.logger.Warn().Err(err).Str("path", user.ProfileImage).Msg("Failed to delete profile image")
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return apperrors.NewInternalError("Failed to delete user", err)
	}

	s.logger.Info().Int64("userId", userID).Msg("User deleted")
	return nil
}
