package dto

// SearchResponse groups results by entity kind. Absent groups were not
// requested by the filter.
type SearchResponse struct {
	Users []UserResponse `json:"users,omitempty"`
	Clubs []ClubResponse `json:"clubs,omitempty"`
	Posts []PostResponse `json:"posts,omitempty"`
}
