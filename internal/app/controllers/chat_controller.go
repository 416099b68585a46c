package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/websocket"
)

// ChatController handles the HTTP side of direct messaging. The
// realtime side lives in the websocket package.
type ChatController struct {
	chatService services.ChatService
	hub         *websocket.Hub
	uploader    *Uploader
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, hub *websocket.Hub, uploader *Uploader) *ChatController {
	return &ChatController{
		chatService: chatService,
		hub:         hub,
		uploader:    uploader,
	}
}

// History handles GET /api/chat/:friendId
func (cc *ChatController) History(c *gin.Context) {
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

	history, err := cc.chatService.History(c.Request.Context(), callerID, friendID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Chat history retrieved", history))
}

// SendMessage handles POST /api/chat/:friendId. The message is stored
// first; if the friend is connected it is also pushed in realtime.
func (cc *ChatController) SendMessage(c *gin.Context) {
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

	var req dto.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid message payload").WithDev(err.Error()))
		return
	}

	mediaPaths, err := cc.uploader.FormMedia(c, maxMessageMedia)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	message, err := cc.chatService.SendMessage(c.Request.Context(), callerID, friendID, req.Content, mediaPaths)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	cc.hub.SendToUser(friendID, websocket.EventReceiveMessage, message)

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Message sent", message))
}
