package dto

import (
	"time"

	"github.com/campuslink/clubnet/internal/app/models"
)

// CreatePostRequest is the multipart form for a new club post or event.
// Event fields are required only when IsEvent is set.
type CreatePostRequest struct {
	ClubID    int64  `form:"-"`
	Content   string `form:"content"`
	IsEvent   bool   `form:"isEvent"`
	EventName string `form:"eventName"`
	EventDate string `form:"eventDate"`
	Location  string `form:"location"`
}

// UpdatePostRequest is a partial post update. A non-nil Media replaces
// the whole media list.
type UpdatePostRequest struct {
	Content   *string  `form:"content" json:"content"`
	Media     []string `form:"-" json:"-"`
	EventName *string  `form:"eventName" json:"eventName"`
	EventDate *string  `form:"eventDate" json:"eventDate"`
	Location  *string  `form:"location" json:"location"`
}

// CommentRequest carries the text of a comment or reply.
type CommentRequest struct {
	Content string `form:"content" json:"content"`
}

// ReplyResponse is the public projection of a reply.
type ReplyResponse struct {
	ID        int64        `json:"id"`
	Author    UserResponse `json:"author"`
	Content   string       `json:"content"`
	Media     []string     `json:"media"`
	CreatedAt time.Time    `json:"createdAt"`
}

// CommentResponse is a comment with its nested replies.
type CommentResponse struct {
	ID        int64           `json:"id"`
	Author    UserResponse    `json:"author"`
	Content   string          `json:"content"`
	Media     []string        `json:"media"`
	Replies   []ReplyResponse `json:"replies"`
	CreatedAt time.Time       `json:"createdAt"`
}

// EventDetailsResponse is the event block of an event post, with the
// interested and going attendee sets.
type EventDetailsResponse struct {
	EventName  string    `json:"eventName"`
	EventDate  time.Time `json:"eventDate"`
	Location   string    `json:"location"`
	Interested []int64   `json:"interested"`
	Going      []int64   `json:"going"`
}

// PostResponse is the public projection of a post.
type PostResponse struct {
	ID        int64                 `json:"id"`
	ClubID    int64                 `json:"clubId"`
	ClubName  string                `json:"clubName,omitempty"`
	AuthorID  int64                 `json:"authorId"`
	Content   string                `json:"content"`
	Media     []string              `json:"media"`
	IsEvent   bool                  `json:"isEvent"`
	Event     *EventDetailsResponse `json:"eventDetails,omitempty"`
	Likes     []int64               `json:"likes"`
	Shares    []int64               `json:"shares"`
	Comments  []CommentResponse     `json:"comments"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ToPostResponse maps a post with its reaction sets; comments are
// attached separately where endpoints need them.
func ToPostResponse(p *models.Post, likes, shares, interested, going []int64) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		ClubID:    p.ClubID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		Media:     p.Media,
		IsEvent:   p.IsEvent,
		Likes:     likes,
		Shares:    shares,
		Comments:  []CommentResponse{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.IsEvent && p.Event != nil {
		resp.Event = &EventDetailsResponse{
			EventName:  p.Event.EventName,
			EventDate:  p.Event.EventDate,
			Location:   p.Event.Location,
			Interested: interested,
			Going:      going,
		}
	}
	return resp
}

// FeedResponse is a paginated newsfeed page.
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}
