package models

import "time"

// Club is a student organization. AdminIDs always holds at least one
// user; the last admin can never be removed.
type Club struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClubImage   string    `json:"clubImage,omitempty"`
	AdminIDs    []int64   `json:"adminIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasAdmin reports whether userID administers the club.
func (c *Club) HasAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
