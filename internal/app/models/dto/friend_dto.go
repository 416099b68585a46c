package dto

import "time"

// FriendRequestResponse is one pending request, seen from either side.
type FriendRequestResponse struct {
	ID        int64        `json:"id"`
	Requester UserResponse `json:"requester"`
	Recipient UserResponse `json:"recipient"`
	CreatedAt time.Time    `json:"createdAt"`
}

// FriendRequestListResponse splits pending requests by direction
// relative to the caller.
type FriendRequestListResponse struct {
	Incoming []FriendRequestResponse `json:"incoming"`
	Outgoing []FriendRequestResponse `json:"outgoing"`
}

// FriendListResponse is the caller's friends.
type FriendListResponse struct {
	Friends []UserResponse `json:"friends"`
}
