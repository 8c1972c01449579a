package handlers

import (
	"errors"
	"net/http"

	"globaled/middleware"
	"globaled/models"
	"globaled/services/session"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	Manager *session.Manager
}

func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{Manager: manager}
}

type setLangRequest struct {
	Lang string `json:"lang" binding:"required"`
}

// sessionUser returns the current user placed on the context by SessionMiddleware.
func sessionUser(c *gin.Context) (models.User, bool) {
	snap, ok := middleware.CurrentSession(c)
	if !ok || snap.User == nil {
		utils.JSONError(c, http.StatusUnauthorized, "No active session", "")
		return nil, false
	}
	return snap.User, true
}

func sessionLang(c *gin.Context) string {
	if snap, ok := middleware.CurrentSession(c); ok {
		return snap.Lang
	}
	return session.LangEnglish
}

// GetSessionHandler handles GET /api/session.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	snap, err := h.Manager.Current(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to load session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load session", err.Error())
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SwitchRoleHandler handles POST /api/session/switch-role.
func (h *SessionHandler) SwitchRoleHandler(c *gin.Context) {
	logger := getLogger(c)
	snap, err := h.Manager.SwitchRole(c.Request.Context())
	if err != nil {
		logger.Error("Failed to switch role", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to switch role", err.Error())
		return
	}
	logger.Info("Session role switched", zap.String("role", string(snap.User.Role())))
	c.JSON(http.StatusOK, snap)
}

// SetLangHandler handles PUT /api/session/lang.
func (h *SessionHandler) SetLangHandler(c *gin.Context) {
	var req setLangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	snap, err := h.Manager.SetLang(c.Request.Context(), req.Lang)
	if err != nil {
		if errors.Is(err, session.ErrUnsupportedLang) {
			utils.JSONError(c, http.StatusBadRequest, "Unsupported language", err.Error())
			return
		}
		getLogger(c).Error("Failed to set language", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to set language", err.Error())
		return
	}
	c.JSON(http.StatusOK, snap)
}
