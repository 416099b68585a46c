package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

// FriendController handles friend request and friendship endpoints.
type FriendController struct {
	friendService services.FriendService
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService services.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

// SendRequest handles POST /api/friend-request/:id
func (fc *FriendController) SendRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	recipientID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	request, err := fc.friendService.SendRequest(c.Request.Context(), callerID, recipientID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Friend request sent", request))
}

// AcceptRequest handles POST /api/friend-request/:id/accept
func (fc *FriendController) AcceptRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := fc.friendService.AcceptRequest(c.Request.Context(), requestID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Friend request accepted", nil))
}

// RejectRequest handles POST /api/friend-request/:id/reject
func (fc *FriendController) RejectRequest(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := fc.friendService.RejectRequest(c.Request.Context(), requestID, callerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Friend request rejected", nil))
}

// RemoveFriend handles DELETE /api/friend/:friendId/remove
func (fc *FriendController) RemoveFriend(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	friendID, err := parseIDParam(c, "friendId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := fc.friendService.RemoveFriend(c.Request.Context(), callerID, friendID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Friend removed", nil))
}

// ListRequests handles GET /api/friend-requests
func (fc *FriendController) ListRequests(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	requests, err := fc.friendService.ListRequests(c.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Friend requests retrieved", requests))
}

// ListFriends handles GET /api/friends
func (fc *FriendController) ListFriends(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	friends, err := fc.friendService.ListFriends(c.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Friends retrieved", friends))
}
