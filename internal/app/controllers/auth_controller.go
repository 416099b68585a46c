package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

// AuthController handles registration and login endpoints.
type AuthController struct {
	userService services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register handles POST /api/user/register
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid registration payload").WithDev(err.Error()))
		return
	}

	user, err := ac.userService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Registration successful", user))
}

// Login handles POST /api/user/login
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid login payload").WithDev(err.Error()))
		return
	}

	tokens, err := ac.userService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", tokens))
}

// AdminLogin handles POST /api/admin/login
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid login payload").WithDev(err.Error()))
		return
	}

	tokens, err := ac.userService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", tokens))
}
