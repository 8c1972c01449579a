package handlers

import (
	"errors"
	"net/http"
	"strconv"

	planRepo "globaled/database/repository/plan"
	userRepo "globaled/database/repository/user"
	"globaled/models"
	"globaled/services/payment"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

type releaseRequest struct {
	// MethodIndex selects one of the student's bound payment methods.
	MethodIndex int `json:"methodIndex"`
}

type addCardRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
}

// paymentStatus maps payment errors to HTTP statuses.
func paymentStatus(err error) (int, string) {
	var planErr *payment.PlanError
	switch {
	case errors.Is(err, planRepo.ErrPlanNotFound):
		return http.StatusNotFound, "Payment plan not found"
	case errors.Is(err, payment.ErrMilestoneNotFound):
		return http.StatusNotFound, "Milestone not found"
	case errors.Is(err, payment.ErrMilestoneNotPending):
		return http.StatusConflict, "Milestone is not awaiting payment"
	case errors.Is(err, payment.ErrNoPaymentMethod):
		return http.StatusUnprocessableEntity, "Please add a payment method first."
	case errors.Is(err, payment.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "Invalid payment method"
	case errors.Is(err, payment.ErrInvalidCardNumber):
		return http.StatusBadRequest, "Invalid card number"
	case errors.Is(err, payment.ErrNotPlanStudent), errors.Is(err, payment.ErrPlanAccessDenied):
		return http.StatusForbidden, "Not allowed for this plan"
	case errors.Is(err, userRepo.ErrNotStudent):
		return http.StatusForbidden, "Only students have payment methods"
	case errors.Is(err, userRepo.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.As(err, &planErr):
		return http.StatusInternalServerError, "Payment plan is invalid"
	default:
		return http.StatusInternalServerError, "Payment request failed"
	}
}

func respondPaymentError(c *gin.Context, err error) {
	status, message := paymentStatus(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(message, zap.Error(err))
	}
	utils.JSONError(c, status, message, err.Error())
}

func milestoneIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("milestoneID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid milestone id", c.Param("milestoneID"))
		return 0, false
	}
	return id, true
}

// ListPlansHandler handles GET /api/payments/plans.
func (h *PaymentHandler) ListPlansHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	plans, err := h.Service.ListPlans(c.Request.Context(), user.Base().ID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlanHandler handles GET /api/payments/plans/:planID.
func (h *PaymentHandler) GetPlanHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	plan, err := h.Service.GetPlan(c.Request.Context(), user.Base().ID, c.Param("planID"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ReleaseMilestoneHandler handles POST /api/payments/plans/:planID/milestones/:milestoneID/release.
func (h *PaymentHandler) ReleaseMilestoneHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	milestoneID, ok := milestoneIDParam(c)
	if !ok {
		return
	}
	var req releaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}

	res, err := h.Service.ReleaseMilestone(c.Request.Context(), payment.ReleaseRequest{
		StudentID:   user.Base().ID,
		PlanID:      c.Param("planID"),
		MilestoneID: milestoneID,
		MethodIndex: req.MethodIndex,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// MilestoneQRHandler handles GET /api/payments/plans/:planID/milestones/:milestoneID/qr.
func (h *PaymentHandler) MilestoneQRHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	milestoneID, ok := milestoneIDParam(c)
	if !ok {
		return
	}
	png, err := h.Service.MilestoneQR(c.Request.Context(), user.Base().ID, c.Param("planID"), milestoneID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ListMethodsHandler handles GET /api/payments/methods.
func (h *PaymentHandler) ListMethodsHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	methods, err := h.Service.ListMethods(c.Request.Context(), user.Base().ID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": nonNilMethods(methods)})
}

// BindAlipayHandler handles POST /api/payments/methods/alipay.
func (h *PaymentHandler) BindAlipayHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	methods, err := h.Service.BindAlipay(c.Request.Context(), user.Base().ID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": nonNilMethods(methods)})
}

// AddCardHandler handles POST /api/payments/methods/card.
func (h *PaymentHandler) AddCardHandler(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid card", err.Error())
		return
	}
	card, methods, err := h.Service.AddCard(c.Request.Context(), user.Base().ID, req.CardNumber)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card, "methods": methods})
}

func nonNilMethods(methods []models.PaymentMethod) []models.PaymentMethod {
	if methods == nil {
		return []models.PaymentMethod{}
	}
	return methods
}
