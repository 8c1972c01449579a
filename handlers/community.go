package handlers

import (
	"errors"
	"net/http"

	postRepo "globaled/database/repository/post"
	"globaled/models"
	"globaled/services/community"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommunityHandler struct {
	Service community.CommunityService
}

func NewCommunityHandler(service community.CommunityService) *CommunityHandler {
	return &CommunityHandler{Service: service}
}

type createPostRequest struct {
	Content string `json:"content"`
	Target  string `json:"target"`
}

// ListPostsHandler handles GET /api/community/posts?board=students|mentors.
func (h *CommunityHandler) ListPostsHandler(c *gin.Context) {
	board := models.Board(c.DefaultQuery("board", string(models.BoardStudents)))
	posts, err := h.Service.List(c.Request.Context(), board)
	if err != nil {
		if errors.Is(err, postRepo.ErrUnknownBoard) {
			utils.JSONError(c, http.StatusBadRequest, "Unknown board", string(board))
			return
		}
		getLogger(c).Error("Failed to list posts", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list posts", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board, "posts": posts})
}

// CreatePostHandler handles POST /api/community/posts.
func (h *CommunityHandler) CreatePostHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	post, err := h.Service.CreatePost(c.Request.Context(), user, req.Content, req.Target)
	if err != nil {
		if errors.Is(err, community.ErrEmptyPost) {
			utils.JSONError(c, http.StatusBadRequest, "Post content is required", "")
			return
		}
		getLogger(c).Error("Failed to create post", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create post", err.Error())
		return
	}
	c.JSON(http.StatusCreated, post)
}
