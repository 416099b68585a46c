package models

import "time"

// FriendRequestStatus tracks the request lifecycle. Accepted and
// rejected requests are removed once resolved; only pending rows
// persist.
type FriendRequestStatus string

const (
	FriendRequestPending FriendRequestStatus = "pending"
)

// FriendRequest is a directed invitation from requester to recipient.
type FriendRequest struct {
	ID          int64               `json:"id"`
	RequesterID int64               `json:"requesterId"`
	RecipientID int64               `json:"recipientId"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}
