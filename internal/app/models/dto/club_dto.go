package dto

import "github.com/campuslink/clubnet/internal/app/models"

// CreateClubRequest is the club creation payload. The caller becomes
// the club's first admin.
type CreateClubRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
}

// UpdateClubRequest is a partial club update. AddAdminID and
// RemoveAdminID toggle the admin set.
type UpdateClubRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	AddAdminID    *int64  `json:"addAdminId"`
	RemoveAdminID *int64  `json:"removeAdminId"`
}

// ClubResponse is the public projection of a club, decorated with a
// live follower count.
type ClubResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ClubImage     string  `json:"clubImage,omitempty"`
	AdminIDs      []int64 `json:"adminIds"`
	FollowerCount int64   `json:"followerCount"`
}

// ToClubResponse maps a club model and its follower count.
func ToClubResponse(c *models.Club, followers int64) ClubResponse {
	return ClubResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		ClubImage:     c.ClubImage,
		AdminIDs:      c.AdminIDs,
		FollowerCount: followers,
	}
}

// ClubListResponse is a paginated club page.
type ClubListResponse struct {
	Clubs      []ClubResponse `json:"clubs"`
	Pagination PaginationInfo `json:"pagination"`
}
