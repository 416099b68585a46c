package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
)

// PostService defines the interface for club posts, events, comments
// and replies.
type PostService interface {
	Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest, mediaPaths []string) (*dto.PostResponse, error)
	GetByID(ctx context.Context, postID int64) (*dto.PostResponse, error)
	ListByClub(ctx context.Context, clubID int64) ([]dto.PostResponse, error)
	Update(ctx context.Context, postID, callerID int64, req *dto.UpdatePostRequest, mediaPaths []string) (*dto.PostResponse, error)
	Delete(ctx context.Context, postID, callerID int64) error

	Like(ctx context.Context, postID, userID int64) error
	Share(ctx context.Context, postID, userID int64) error
	MarkInterested(ctx context.Context, postID, userID int64) error
	MarkGoing(ctx context.Context, postID, userID int64) error

	AddComment(ctx context.Context, postID, authorID int64, content string, mediaPaths []string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID, callerID int64, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, callerID int64) error

	AddReply(ctx context.Context, commentID, authorID int64, content string, mediaPaths []string) (*dto.ReplyResponse, error)
	UpdateReply(ctx context.Context, replyID, callerID int64, content string) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, replyID, callerID int64) error
}

type postServiceImpl struct {
	postRepo    repositories.PostRepository
	clubRepo    repositories.ClubRepository
	userRepo    repositories.UserRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		clubRepo:    clubRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Create publishes a post, or an event when the event fields are set.
// Only an admin of the target club may post.
func (s *postServiceImpl) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest, mediaPaths []string) (*dto.PostResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create post", err)
	}
	if club == nil {
		return nil, apperrors.NewNotFoundError("Club not found")
	}

	if !club.HasAdmin(authorID) {
		return nil, apperrors.NewForbiddenError("Only a club admin can post for this club")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && len(mediaPaths) == 0 {
		return nil, apperrors.NewValidationError("A post needs content or media")
	}

	post := &models.Post{
		ClubID:   req.ClubID,
		AuthorID: authorID,
		Content:  content,
		Media:    mediaPaths,
		IsEvent:  req.IsEvent,
	}
	if post.Media == nil {
		post.Media = []string{}
	}

	if req.IsEvent {
		event, err := parseEventFields(req.EventName, req.EventDate, req.Location)
		if err != nil {
			return nil, err
		}
		post.Event = event
	}

	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperrors.NewInternalError("Failed to create post", err)
	}

	s.logger.Info().
		Int64("postId", post.ID).
		Int64("clubId", post.ClubID).
		Bool("isEvent", post.IsEvent).
		Msg("Post created")

	return s.buildResponse(ctx, post)
}

func parseEventFields(name, date, location string) (*models.EventDetails, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || date == "" || location == "" {
		return nil, apperrors.NewValidationError("An event needs a name, date and location")
	}

	when, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return nil, apperrors.NewValidationError("Event date must be in RFC 3339 format")
	}

	return &models.EventDetails{
		EventName: name,
		EventDate: when,
		Location:  location,
	}, nil
}

func (s *postServiceImpl) GetByID(ctx context.Context, postID int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve post", err)
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError("Post not found")
	}

	resp, err := s.buildResponse(ctx, post)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentsResponse(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp.Comments = comments
	return resp, nil
}

func (s *postServiceImpl) ListByClub(ctx context.Context, clubID int64) ([]dto.PostResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list posts", err)
	}
	if club == nil {
		return nil, apperrors.NewNotFoundError("Club not found")
	}

	posts, err := s.postRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list posts", err)
	}

	responses := []dto.PostResponse{}
	for _, post := range posts {
		resp, err := s.buildResponse(ctx, post)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Update applies a partial update. New media replaces the existing
// list; replaced files are removed best-effort.
func (s *postServiceImpl) Update(ctx context.Context, postID, callerID int64, req *dto.UpdatePostRequest, mediaPaths []string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update post", err)
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError("Post not found")
	}

	if err := s.authorizePost(ctx, post, callerID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" && len(post.Media) == 0 && len(mediaPaths) == 0 {
			return nil, apperrors.NewValidationError("A post needs content or media")
		}
		post.Content = content
	}

	if len(mediaPaths) > 0 {
		for _, old := range post.Media {
			if err := s.fileStorage.DeleteFile(old); err != nil {
				s.logger.Warn().Err(err).Str("path", old).Msg("Failed to delete replaced media file")
			}
		}
		post.Media = mediaPaths
	}

	if post.IsEvent && post.Event != nil {
		if req.EventName != nil {
			name := strings.TrimSpace(*req.EventName)
			if name == "" {
				return nil, apperrors.NewValidationError("Event name cannot be empty")
			}
			post.Event.EventName = name
		}
		if req.EventDate != nil {
			when, err := time.Parse(time.RFC3339, *req.EventDate)
			if err != nil {
				return nil, apperrors.NewValidationError("Event date must be in RFC 3339 format")
			}
			post.Event.EventDate = when
		}
		if req.Location != nil {
			post.Event.Location = strings.TrimSpace(*req.Location)
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, apperrors.NewInternalError("Failed to update post", err)
	}

	return s.buildResponse(ctx, post)
}

// Delete removes a post along with its comments and reactions. Media
// files are cleaned up best-effort.
func (s *postServiceImpl) Delete(ctx context.Context, postID, callerID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperrors.NewInternalError("Failed to delete post", err)
	}
	if post == nil {
		return apperrors.NewNotFoundError("Post not found")
	}

	if err := s.authorizePost(ctx, post, callerID); err != nil {
		return err
	}

	media := append([]string{}, post.Media...)
	comments, err := s.postRepo.CommentsForPost(ctx, postID)
	if err == nil {
		commentIDs := make([]int64, 0, len(comments))
		for _, comment := range comments {
			media = append(media, comment.Media...)
			commentIDs = append(commentIDs, comment.ID)
		}
		if replies, err := s.postRepo.RepliesForComments(ctx, commentIDs); err == nil {
			for _, reply := range replies {
				media = append(media, reply.Media...)
			}
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return apperrors.NewInternalError("Failed to delete post", err)
	}

	for _, path := range media {
		if err := s.fileStorage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete post media file")
		}
	}

	s.logger.Info().Int64("postId", postID).Msg("Post deleted")
	return nil
}

func (s *postServiceImpl) Like(ctx context.Context, postID, userID int64) error {
	return s.react(ctx, postID, userID, models.ReactionLike, false)
}

func (s *postServiceImpl) Share(ctx context.Context, postID, userID int64) error {
	return s.react(ctx, postID, userID, models.ReactionShare, false)
}

// MarkInterested records event interest; valid only on event posts.
func (s *postServiceImpl) MarkInterested(ctx context.Context, postID, userID int64) error {
	return s.react(ctx, postID, userID, models.ReactionInterested, true)
}

// MarkGoing records event attendance; valid only on event posts.
func (s *postServiceImpl) MarkGoing(ctx context.Context, postID, userID int64) error {
	return s.react(ctx, postID, userID, models.ReactionGoing, true)
}

func (s *postServiceImpl) react(ctx context.Context, postID, userID int64, kind models.ReactionKind, eventOnly bool) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperrors.NewInternalError("Failed to record reaction", err)
	}
	if post == nil {
		return apperrors.NewNotFoundError("Post not found")
	}
	if eventOnly && !post.IsEvent {
		return apperrors.NewValidationError("This post is not an event")
	}

	if err := s.postRepo.AddReaction(ctx, postID, userID, kind); err != nil {
		return apperrors.NewInternalError("Failed to record reaction", err)
	}
	return nil
}

// AddComment attaches a comment to a post. Content is required even
// when media is attached.
func (s *postServiceImpl) AddComment(ctx context.Context, postID, authorID int64, content string, mediaPaths []string) (*dto.CommentResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to add comment", err)
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError("Post not found")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("A comment cannot be empty")
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		Media:    mediaPaths,
	}
	if comment.Media == nil {
		comment.Media = []string{}
	}

	if _, err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, apperrors.NewInternalError("Failed to add comment", err)
	}

	return s.commentResponse(ctx, comment, nil)
}

// UpdateComment edits a comment. Only its author may edit.
func (s *postServiceImpl) UpdateComment(ctx context.Context, commentID, callerID int64, content string) (*dto.CommentResponse, error) {
	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update comment", err)
	}
	if comment == nil {
		return nil, apperrors.NewNotFoundError("Comment not found")
	}
	if comment.AuthorID != callerID {
		return nil, apperrors.NewForbiddenError("Only the author can edit this comment")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("A comment cannot be empty")
	}
	comment.Content = content

	if err := s.postRepo.UpdateComment(ctx, comment); err != nil {
		return nil, apperrors.NewInternalError("Failed to update comment", err)
	}

	replies, err := s.postRepo.RepliesForComments(ctx, []int64{commentID})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update comment", err)
	}
	return s.commentResponse(ctx, comment, replies)
}

// DeleteComment removes a comment and its replies. Only its author
// may delete.
func (s *postServiceImpl) DeleteComment(ctx context.Context, commentID, callerID int64) error {
	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return apperrors.NewInternalError("Failed to delete comment", err)
	}
	if comment == nil {
		return apperrors.NewNotFoundError("Comment not found")
	}
	if comment.AuthorID != callerID {
		return apperrors.NewForbiddenError("Only the author can delete this comment")
	}

	media := append([]string{}, comment.Media...)
	if replies, err := s.postRepo.RepliesForComments(ctx, []int64{commentID}); err == nil {
		for _, reply := range replies {
			media = append(media, reply.Media...)
		}
	}

	if err := s.postRepo.DeleteComment(ctx, commentID); err != nil {
		return apperrors.NewInternalError("Failed to delete comment", err)
	}

	for _, path := range media {
		if err := s.fileStorage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete comment media file")
		}
	}
	return nil
}

// AddReply nests a reply under a comment. Replies do not nest further.
func (s *postServiceImpl) AddReply(ctx context.Context, commentID, authorID int64, content string, mediaPaths []string) (*dto.ReplyResponse, error) {
	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to add reply", err)
	}
	if comment == nil {
		return nil, apperrors.NewNotFoundError("Comment not found")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("A reply cannot be empty")
	}

	reply := &models.Reply{
		CommentID: commentID,
		AuthorID:  authorID,
		Content:   content,
		Media:     mediaPaths,
	}
	if reply.Media == nil {
		reply.Media = []string{}
	}

	if _, err := s.postRepo.CreateReply(ctx, reply); err != nil {
		return nil, apperrors.NewInternalError("Failed to add reply", err)
	}

	return s.replyResponse(ctx, reply)
}

// UpdateReply edits a reply. Only its author may edit.
func (s *postServiceImpl) UpdateReply(ctx context.Context, replyID, callerID int64, content string) (*dto.ReplyResponse, error) {
	reply, err := s.postRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update reply", err)
	}
	if reply == nil {
		return nil, apperrors.NewNotFoundError("Reply not found")
	}
	if reply.AuthorID != callerID {
		return nil, apperrors.NewForbiddenError("Only the author can edit this reply")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("A reply cannot be empty")
	}
	reply.Content = content

	if err := s.postRepo.UpdateReply(ctx, reply); err != nil {
		return nil, apperrors.NewInternalError("Failed to update reply", err)
	}
	return s.replyResponse(ctx, reply)
}

// DeleteReply removes a reply. Only its author may delete.
func (s *postServiceImpl) DeleteReply(ctx context.Context, replyID, callerID int64) error {
	reply, err := s.postRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return apperrors.NewInternalError("Failed to delete reply", err)
	}
	if reply == nil {
		return apperrors.NewNotFoundError("Reply not found")
	}
	if reply.AuthorID != callerID {
		return apperrors.NewForbiddenError("Only the author can delete this reply")
	}

	if err := s.postRepo.DeleteReply(ctx, replyID); err != nil {
		return apperrors.NewInternalError("Failed to delete reply", err)
	}

	for _, path := range reply.Media {
		if err := s.fileStorage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete reply media file")
		}
	}
	return nil
}

func (s *postServiceImpl) authorizePost(ctx context.Context, post *models.Post, callerID int64) error {
	club, err := s.clubRepo.GetByID(ctx, post.ClubID)
	if err != nil {
		return apperrors.NewInternalError("Failed to check permissions", err)
	}
	if club == nil || !club.HasAdmin(callerID) {
		return apperrors.NewForbiddenError("Only a club admin can manage this post")
	}
	return nil
}

func (s *postServiceImpl) buildResponse(ctx context.Context, post *models.Post) (*dto.PostResponse, error) {
	reactions, err := s.postRepo.ReactionsForPost(ctx, post.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve post", err)
	}

	resp := dto.ToPostResponse(post,
		idsOrEmpty(reactions[models.ReactionLike]),
		idsOrEmpty(reactions[models.ReactionShare]),
		idsOrEmpty(reactions[models.ReactionInterested]),
		idsOrEmpty(reactions[models.ReactionGoing]),
	)
	return &resp, nil
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func (s *postServiceImpl) commentsResponse(ctx context.Context, postID int64) ([]dto.CommentResponse, error) {
	comments, err := s.postRepo.CommentsForPost(ctx, postID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve comments", err)
	}

	commentIDs := make([]int64, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}

	replies, err := s.postRepo.RepliesForComments(ctx, commentIDs)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve comments", err)
	}

	byComment := map[int64][]*models.Reply{}
	for _, reply := range replies {
		byComment[reply.CommentID] = append(byComment[reply.CommentID], reply)
	}

	responses := []dto.CommentResponse{}
	for _, comment := range comments {
		resp, err := s.commentResponse(ctx, comment, byComment[comment.ID])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *postServiceImpl) commentResponse(ctx context.Context, comment *models.Comment, replies []*models.Reply) (*dto.CommentResponse, error) {
	author, err := s.userRepo.GetByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve comment", err)
	}

	resp := dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Media:     comment.Media,
		Replies:   []dto.ReplyResponse{},
		CreatedAt: comment.CreatedAt,
	}
	if author != nil {
		resp.Author = dto.ToUserResponse(author)
	}

	for _, reply := range replies {
		replyResp, err := s.replyResponse(ctx, reply)
		if err != nil {
			return nil, err
		}
		resp.Replies = append(resp.Replies, *replyResp)
	}
	return &resp, nil
}

func (s *postServiceImpl) replyResponse(ctx context.Context, reply *models.Reply) (*dto.ReplyResponse, error) {
	author, err := s.userRepo.GetByID(ctx, reply.AuthorID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve reply", err)
	}

	resp := dto.ReplyResponse{
		ID:        reply.ID,
		Content:   reply.Content,
		Media:     reply.Media,
		CreatedAt: reply.CreatedAt,
	}
	if author != nil {
		resp.Author = dto.ToUserResponse(author)
	}
	return &resp, nil
}
