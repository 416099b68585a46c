package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/helpers"
)

// FeedController serves the personal newsfeed.
type FeedController struct {
	feedService services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// Newsfeed handles GET /api/newsfeed
func (fc *FeedController) Newsfeed(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	page, limit := helpers.ParsePaginationParams(c)
	feed, err := fc.feedService.Newsfeed(c.Request.Context(), callerID, page, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Newsfeed retrieved", feed))
}
