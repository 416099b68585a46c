package dto

import "github.com/campuslink/clubnet/internal/app/models"

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the credential payload for both user and admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest carries the old and new credentials.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateUserRequest is the admin-facing partial user update.
type UpdateUserRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Email     *string      `json:"email"`
	Role      *models.Role `json:"role"`
	Verified  *bool        `json:"verified"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID           int64       `json:"id"`
	StudentID    string      `json:"studentId"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Verified     bool        `json:"verified"`
	ProfileImage string      `json:"profileImage,omitempty"`
}

// ToUserResponse maps a user model to its public projection.
func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		StudentID:    u.StudentID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Verified:     u.Verified,
		ProfileImage: u.ProfileImage,
	}
}

// ToUserResponses maps a slice of users.
func ToUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// TokenResponse is the login result.
type TokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// UserListResponse is a paginated user page.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
