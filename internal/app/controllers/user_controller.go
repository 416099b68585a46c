package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/helpers"
)

// UserController handles profile and user administration endpoints.
type UserController struct {
	userService services.UserService
	uploader    *Uploader
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, uploader *Uploader) *UserController {
	return &UserController{
		userService: userService,
		uploader:    uploader,
	}
}

// ViewUsers handles GET /api/user/view
func (uc *UserController) ViewUsers(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	page, limit := helpers.ParsePaginationParams(c)
	result, err := uc.userService.List(c.Request.Context(), callerID, page, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Users retrieved", result))
}

// ViewUser handles GET /api/user/view/:userId
func (uc *UserController) ViewUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := uc.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User retrieved", user))
}

// ViewProfile handles GET /api/user/view-profile
func (uc *UserController) ViewProfile(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	user, err := uc.userService.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Profile retrieved", user))
}

// SearchUsers handles GET /api/user/search
func (uc *UserController) SearchUsers(c *gin.Context) {
	users, err := uc.userService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Users retrieved", users))
}

// ChangePassword handles POST /api/user/change-password
func (uc *UserController) ChangePassword(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid password payload").WithDev(err.Error()))
		return
	}

	if err := uc.userService.ChangePassword(c.Request.Context(), callerID, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Password changed", nil))
}

// UpdateProfileImage handles PUT /api/user/profile/image
func (uc *UserController) UpdateProfileImage(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewForbiddenError("Authentication required"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("An image file is required").WithDev(err.Error()))
		return
	}

	path, err := uc.uploader.SaveOne(file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := uc.userService.UpdateProfileImage(c.Request.Context(), callerID, path)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Profile image updated", user))
}

// UpdateUser handles PUT /api/users/:userId (admin only)
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid user payload").WithDev(err.Error()))
		return
	}

	user, err := uc.userService.UpdateByAdmin(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User updated", user))
}

// DeleteUser handles DELETE /api/users/:userId (admin only)
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := uc.userService.DeleteByAdmin(c.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted", nil))
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name + " parameter")
	}
	return id, nil
}
