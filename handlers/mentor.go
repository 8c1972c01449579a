package handlers

import (
	"errors"
	"net/http"
	"strconv"

	mentorRepo "globaled/database/repository/mentor"
	"globaled/services/mentor"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MentorHandler struct {
	Service mentor.MentorService
}

func NewMentorHandler(service mentor.MentorService) *MentorHandler {
	return &MentorHandler{Service: service}
}

// ListMentorsHandler handles GET /api/mentors?region=&major=&search=.
func (h *MentorHandler) ListMentorsHandler(c *gin.Context) {
	logger := getLogger(c)
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var f mentor.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	mentors, err := h.Service.Search(c.Request.Context(), f, user.Base().ID)
	if err != nil {
		logger.Error("Failed to search mentors", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get mentors", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// MentorFacetsHandler handles GET /api/mentors/facets.
func (h *MentorHandler) MentorFacetsHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	facets, err := h.Service.Facets(c.Request.Context(), user.Base().ID)
	if err != nil {
		getLogger(c).Error("Failed to build facets", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get filters", err.Error())
		return
	}
	c.JSON(http.StatusOK, facets)
}

func mentorIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid mentor id", c.Param("id"))
		return 0, false
	}
	return id, true
}

// GetMentorHandler handles GET /api/mentors/:id.
func (h *MentorHandler) GetMentorHandler(c *gin.Context) {
	id, ok := mentorIDParam(c)
	if !ok {
		return
	}
	m, err := h.Service.GetMentor(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetReviewsHandler handles GET /api/mentors/:id/reviews.
func (h *MentorHandler) GetReviewsHandler(c *gin.Context) {
	id, ok := mentorIDParam(c)
	if !ok {
		return
	}
	reviews, err := h.Service.GetReviews(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *MentorHandler) respondError(c *gin.Context, id int, err error) {
	if errors.Is(err, mentorRepo.ErrMentorNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Mentor not found", strconv.Itoa(id))
		return
	}
	getLogger(c).Error("Failed to load mentor", zap.Int("id", id), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Failed to load mentor", err.Error())
}
