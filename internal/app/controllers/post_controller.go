package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

// PostController handles post, event, comment and reply endpoints.
type PostController struct {
	postService services.PostService
	uploader    *Uploader
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, uploader *Uploader) *PostController {
	return &PostController{
		postService: postService,
		uploader:    uploader,
	}
}

// CreatePost handles POST /api/clubs/:clubId/posts
func (pc *PostController) CreatePost(c *gin.Context) {
	callerID, err := caller(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid post payload").WithDev(err.Error()))
		return
	}
	req.ClubID = clubID

	mediaPaths, err := pc.uploader.FormMedia(c, maxPostMedia)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	post, err := pc.postService.Create(c.Request.Context(), callerID, &req, mediaPaths)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Post created", post))
}

// GetPost handles GET /api/posts/:postId
func (pc *PostController) GetPost(c *gin.Context) {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	post, err := pc.postService.GetByID(c.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Post retrieved", post))
}

// ListClubPosts handles GET /api/clubs/:clubId/posts
func (pc *PostController) ListClubPosts(c *gin.Context) {
	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	posts, err := pc.postService.ListByClub(c.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Posts retrieved", posts))
}

// UpdatePost handles PUT /api/posts/:postId
func (pc *PostController) UpdatePost(c *gin.Context) {
	callerID, err := caller(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid post payload").WithDev(err.Error()))
		return
	}

	mediaPaths, err := pc.uploader.FormMedia(c, maxPostMedia)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	post, err := pc.postService.Update(c.Request.Context(), postID, callerID, &req, mediaPaths)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Post updated", post))
}

// DeletePost handles DELETE /api/posts/:postId
func (pc *PostController) DeletePost(c *gin.Context) {
	callerID, err := caller(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.postService.Delete(c.Request.Context(), postID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Post deleted", nil))
}

// LikePost handles POST /api/posts/:postId/like
func (pc *PostController) LikePost(c *gin.Context) {
	pc.reaction(c, pc.postService.Like, "Post liked")
}

// SharePost handles POST /api/posts/:postId/share
func (pc *PostController) SharePost(c *gin.Context) {
	pc.reaction(c, pc.postService.Share, "Post shared")
}

// MarkInterested handles POST /api/posts/:postId/interested
func (pc *PostController) MarkInterested(c *gin.Context) {
	pc.reaction(c, pc.postService.MarkInterested, "Marked as interested")
}

// MarkGoing handles POST /api/posts/:postId/going
func (pc *PostController) MarkGoing(c *gin.Context) {
	pc.reaction(c, pc.postService.MarkGoing, "Marked as going")
}

// AddComment handles POST /api/posts/:postId/comments
func (pc *PostController) AddComment(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid comment payload").WithDev(err.Error()))
		return
	}

	mediaPaths, err := pc.uploader.FormMedia(c, maxCommentMedia)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	comment, err := pc.postService.AddComment(c.Request.Context(), postID, callerID, req.Content, mediaPaths)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Comment added", comment))
}

// UpdateComment handles PUT /api/comments/:commentId
func (pc *PostController) UpdateComment(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid comment payload").WithDev(err.Error()))
		return
	}

	comment, err := pc.postService.UpdateComment(c.Request.Context(), commentID, callerID, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Comment updated", comment))
}

// DeleteComment handles DELETE /api/comments/:commentId
func (pc *PostController) DeleteComment(c *gin.Context) {
	callerID, err := caller(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.postService.DeleteComment(c.Request.Context(), commentID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Comment deleted", nil))
}

// AddReply handles POST /api/comments/:commentId/replies
func (pc *PostController) AddReply(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid reply payload").WithDev(err.Error()))
		return
	}

	mediaPaths, err := pc.uploader.FormMedia(c, maxCommentMedia)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	reply, err := pc.postService.AddReply(c.Request.Context(), commentID, callerID, req.Content, mediaPaths)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Reply added", reply))
}

// UpdateReply handles PUT /api/replies/:replyId
func (pc *PostController) UpdateReply(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	replyID, err := parseIDParam(c, "replyId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid reply payload").WithDev(err.Error()))
		return
	}

	reply, err := pc.postService.UpdateReply(c.Request.Context(), replyID, callerID, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Reply updated", reply))
}

// DeleteReply handles DELETE /api/replies/:replyId
func (pc *PostController) DeleteReply(c *gin.Context) {
	callerID, err := caller(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	replyID, err := parseIDParam(c, "replyId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.postService.DeleteReply(c.Request.Context(), replyID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Reply deleted", nil))
}

func (pc *PostController) reaction(c *gin.Context, fn func(ctx context.Context, postID, userID int64) error, message string) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := fn(c.Request.Context(), postID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, nil))
}


func caller(c *gin.Context) (int64, error) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return 0, apperrors.NewForbiddenError("Authentication required")
	}
	return callerID, nil
}
