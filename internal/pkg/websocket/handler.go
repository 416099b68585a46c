package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/pkg/auth"
)

const serviceTimeout = 10 * time.Second

// ChatHandler upgrades HTTP connections to websocket chat sessions.
type ChatHandler struct {
	hub         *Hub
	chatService services.ChatService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(hub *Hub, chatService services.ChatService, jwtService *auth.JWTService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		hub:         hub,
		chatService: chatService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

type sendMessagePayload struct {
	RecipientID int64  `json:"recipientId"`
	Content     string `json:"content"`
}

// HandleConnection authenticates the caller and runs the session
// pumps. Browsers cannot set headers on websocket requests, so the
// token may also arrive as a query parameter.
func (h *ChatHandler) HandleConnection(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		extracted, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tokenString = extracted
	}

	claims, err := h.jwtService.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 64),
		userID:     claims.UserID,
		onEnvelope: h.handleEnvelope,
		logger:     h.logger,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleEnvelope routes one inbound frame. Messages are persisted
// before any delivery, then pushed to the recipient if they are
// online and acknowledged back to the sender.
func (h *ChatHandler) handleEnvelope(client *Client, envelope *Envelope) {
	if envelope.Event != EventSendMessage {
		client.sendError("Unknown event")
		return
	}

	var payload sendMessagePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		client.sendError("Malformed payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	defer cancel()

	message, err := h.chatService.SendMessage(ctx, client.userID, payload.RecipientID, payload.Content, nil)
	if err != nil {
		client.sendError(err.Error())
		return
	}

	h.hub.SendToUser(payload.RecipientID, EventReceiveMessage, message)
	h.hub.SendToUser(client.userID, EventMessageSent, message)
}
