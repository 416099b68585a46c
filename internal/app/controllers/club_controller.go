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

// ClubController handles club management and follow endpoints.
type ClubController struct {
	clubService services.ClubService
	uploader    *Uploader
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, uploader *Uploader) *ClubController {
	return &ClubController{
		clubService: clubService,
		uploader:    uploader,
	}
}

// CreateClub handles POST /api/clubs
func (cc *ClubController) CreateClub(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	var req dto.CreateClubRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid club payload").WithDev(err.Error()))
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		path, err := cc.uploader.SaveOne(file)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		imagePath = path
	}

	club, err := cc.clubService.Create(c.Request.Context(), callerID, &req, imagePath)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Club created", club))
}

// ListClubs handles GET /api/clubs
func (cc *ClubController) ListClubs(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c)
	result, err := cc.clubService.List(c.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Clubs retrieved", result))
}

// GetClub handles GET /api/clubs/:clubId
func (cc *ClubController) GetClub(c *gin.Context) {
	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	club, err := cc.clubService.GetByID(c.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club retrieved", club))
}

// SearchClubs handles GET /api/search-clubs
func (cc *ClubController) SearchClubs(c *gin.Context) {
	clubs, err := cc.clubService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Clubs retrieved", clubs))
}

// UpdateClub handles PUT /api/clubs/:clubId
func (cc *ClubController) UpdateClub(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	callerRole, roleOK := middleware.CallerRole(c)
	if !ok || !roleOK {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid club payload").WithDev(err.Error()))
		return
	}

	club, err := cc.clubService.Update(c.Request.Context(), clubID, callerID, callerRole, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club updated", club))
}

// UpdateClubImage handles PUT /api/clubs/:clubId/image
func (cc *ClubController) UpdateClubImage(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	callerRole, roleOK := middleware.CallerRole(c)
	if !ok || !roleOK {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("An image file is required").WithDev(err.Error()))
		return
	}

	path, err := cc.uploader.SaveOne(file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	club, err := cc.clubService.UpdateImage(c.Request.Context(), clubID, callerID, callerRole, path)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club image updated", club))
}

// DeleteClub handles DELETE /api/clubs/:clubId
func (cc *ClubController) DeleteClub(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	callerRole, roleOK := middleware.CallerRole(c)
	if !ok || !roleOK {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.clubService.Delete(c.Request.Context(), clubID, callerID, callerRole); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club deleted", nil))
}

// FollowClub handles POST /api/follow/:clubId
func (cc *ClubController) FollowClub(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.clubService.Follow(c.Request.Context(), callerID, clubID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club followed", nil))
}

// UnfollowClub handles POST /api/unfollow/:clubId
func (cc *ClubController) UnfollowClub(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.clubService.Unfollow(c.Request.Context(), callerID, clubID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Club unfollowed", nil))
}

// FollowedClubs handles GET /api/followed-clubs
func (cc *ClubController) FollowedClubs(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	clubs, err := cc.clubService.FollowedClubs(c.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Followed clubs retrieved", clubs))
}
