package models

import "time"

// EventDetails is present only on event posts.
type EventDetails struct {
	EventName string    `json:"eventName"`
	EventDate time.Time `json:"eventDate"`
	Location  string    `json:"location"`
}

// Post is a club publication, optionally an event announcement.
type Post struct {
	ID        int64         `json:"id"`
	ClubID    int64         `json:"clubId"`
	AuthorID  int64         `json:"authorId"`
	Content   string        `json:"content"`
	Media     []string      `json:"media"`
	IsEvent   bool          `json:"isEvent"`
	Event     *EventDetails `json:"eventDetails,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Comment is a top-level response to a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	Media     []string  `json:"media"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reply is a second-level response nested under a comment. Replies do
// not nest further.
type Reply struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"commentId"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	Media     []string  `json:"media"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
