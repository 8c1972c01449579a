package handlers

import (
	"errors"
	"net/http"
	"strconv"

	userRepo "globaled/database/repository/user"
	"globaled/services/chat"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(service chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: service}
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", err.Error())
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrSelfChat):
		utils.JSONError(c, http.StatusBadRequest, "Invalid message", err.Error())
	default:
		getLogger(c).Error("Chat request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Chat request failed", err.Error())
	}
}

func peerIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("peerID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user id", c.Param("peerID"))
		return 0, false
	}
	return id, true
}

// ChatHistoryHandler handles GET /api/chats/:peerID.
func (h *ChatHandler) ChatHistoryHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	peerID, ok := peerIDParam(c)
	if !ok {
		return
	}
	history, err := h.Service.History(c.Request.Context(), user.Base().ID, peerID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

// SendChatHandler handles POST /api/chats/:peerID.
func (h *ChatHandler) SendChatHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	peerID, ok := peerIDParam(c)
	if !ok {
		return
	}
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	msg, err := h.Service.Send(c.Request.Context(), user.Base().ID, peerID, req.Text)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
