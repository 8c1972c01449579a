package handlers

import (
	"errors"
	"net/http"
	"time"

	"globaled/models"
	ai "globaled/services/intelligence"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type AIHandler struct {
	Service ai.AIService
}

func NewAIHandler(service ai.AIService) *AIHandler {
	return &AIHandler{Service: service}
}

type newConversationRequest struct {
	Lang string `json:"lang"`
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang"`
}

type analysisRequest struct {
	Text string              `json:"text" binding:"required"`
	Type models.AnalysisKind `json:"type" binding:"required"`
}

// streamWriteTimeout bounds each frame write so a half-open client cannot stall a stream.
const streamWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// respondAIError maps assistant errors to HTTP statuses. A missing credential is a
// configuration error and carries the static message shown to the user.
func respondAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ai.ErrAINotConfigured):
		utils.JSONError(c, http.StatusServiceUnavailable, ai.ConfigErrorMessage, err.Error())
	case errors.Is(err, ai.ErrConversationNotFound):
		utils.JSONError(c, http.StatusNotFound, "Conversation not found", err.Error())
	case errors.Is(err, ai.ErrConversationBusy):
		utils.JSONError(c, http.StatusConflict, "Conversation is awaiting a response", err.Error())
	case errors.Is(err, ai.ErrEmptyMessage), errors.Is(err, ai.ErrInvalidAnalysisKind):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		getLogger(c).Error("AI request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "AI request failed", err.Error())
	}
}

func pickLang(c *gin.Context, requested string) string {
	if requested != "" {
		return ai.NormalizeLang(requested)
	}
	return ai.NormalizeLang(sessionLang(c))
}

// ListConversationsHandler handles GET /api/ai/conversations.
func (h *AIHandler) ListConversationsHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	convs, err := h.Service.ListConversations(c.Request.Context(), user.Base().ID)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs, "configured": h.Service.Configured()})
}

// NewConversationHandler handles POST /api/ai/conversations.
func (h *AIHandler) NewConversationHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req newConversationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}
	conv, err := h.Service.NewConversation(c.Request.Context(), user.Base().ID, pickLang(c, req.Lang))
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// GetConversationHandler handles GET /api/ai/conversations/:id.
func (h *AIHandler) GetConversationHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	conv, err := h.Service.GetConversation(c.Request.Context(), user.Base().ID, c.Param("id"))
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendMessageHandler handles POST /api/ai/conversations/:id/messages.
func (h *AIHandler) SendMessageHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	reply, err := h.Service.SendMessage(c.Request.Context(), user.Base().ID, c.Param("id"), req.Text, pickLang(c, req.Lang))
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// StreamMessageHandler handles GET /api/ai/conversations/:id/stream. The client
// upgrades to a websocket, sends {"text": "..."} and receives StreamEvent frames
// until a done or error event.
func (h *AIHandler) StreamMessageHandler(c *gin.Context) {
	logger := getLogger(c)
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	if !h.Service.Configured() {
		respondAIError(c, ai.ErrAINotConfigured)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req sendMessageRequest
	if err := conn.ReadJSON(&req); err != nil {
		logger.Warn("Invalid stream request", zap.Error(err))
		_ = conn.WriteJSON(ai.StreamEvent{Type: ai.StreamError, Notice: "Invalid request"})
		return
	}

	pm, err := h.Service.StreamMessage(c.Request.Context(), user.Base().ID, c.Param("id"), req.Text, pickLang(c, req.Lang))
	if err != nil {
		notice := err.Error()
		if errors.Is(err, ai.ErrAINotConfigured) {
			notice = ai.ConfigErrorMessage
		}
		_ = conn.WriteJSON(ai.StreamEvent{Type: ai.StreamError, Notice: notice})
		return
	}

	// A read error means the client went away; stop generating.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				pm.Cancel()
				return
			}
		}
	}()

	for ev := range pm.Updates() {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			logger.Info("Stream client disconnected", zap.String("conversation", pm.ConversationID), zap.Error(err))
			pm.Cancel()
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// RequestAnalysisHandler handles POST /api/ai/conversations/:id/analysis.
func (h *AIHandler) RequestAnalysisHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	msg, err := h.Service.RequestAnalysis(c.Request.Context(), user.Base().ID, c.Param("id"), req.Text, req.Type)
	if err != nil {
		respondAIError(c, err)
		return
	}
	if msg == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// AnalyzeWritingHandler handles POST /api/ai/writing/analyze.
func (h *AIHandler) AnalyzeWritingHandler(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	msg, err := h.Service.AnalyzeText(c.Request.Context(), req.Text, req.Type)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
