package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	planRepo "globaled/database/repository/plan"
	userRepo "globaled/database/repository/user"
	"globaled/models"
	"globaled/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService drives escrow-style milestone releases and the payment method registry.
type PaymentService interface {
	ListPlans(ctx context.Context, userID int) ([]PlanView, error)
	GetPlan(ctx context.Context, userID int, planID string) (*PlanView, error)
	ReleaseMilestone(ctx context.Context, req ReleaseRequest) (*ReleaseResult, error)
	MilestoneQR(ctx context.Context, userID int, planID string, milestoneID int) ([]byte, error)
	ListMethods(ctx context.Context, studentID int) ([]models.PaymentMethod, error)
	BindAlipay(ctx context.Context, studentID int) ([]models.PaymentMethod, error)
	AddCard(ctx context.Context, studentID int, cardNumber string) (models.CardMethod, []models.PaymentMethod, error)
}

// ReleaseRequest selects the milestone to release and which bound method pays for it.
type ReleaseRequest struct {
	StudentID   int
	PlanID      string
	MilestoneID int
	MethodIndex int
}

type ReleaseResult struct {
	Plan    PlanView       `json:"plan"`
	Receipt models.Receipt `json:"receipt"`
}

// PlanView is a plan with its derived progress figures.
type PlanView struct {
	models.PaymentPlan
	Paid      decimal.Decimal   `json:"paid"`
	Remaining decimal.Decimal   `json:"remaining"`
	Current   *models.Milestone `json:"currentMilestone,omitempty"`
}

func NewPlanView(plan models.PaymentPlan) PlanView {
	view := PlanView{
		PaymentPlan: plan,
		Paid:        PaidAmount(plan),
		Remaining:   RemainingAmount(plan),
	}
	if m, ok := CurrentMilestone(plan); ok {
		view.Current = &m
	}
	return view
}

// DefaultPaymentService implements PaymentService over the plan and user repositories.
type DefaultPaymentService struct {
	Plans  planRepo.PlanRepository
	Users  userRepo.UserRepository
	logger *zap.Logger
	now    func() time.Time

	// mu serialises read-transition-write cycles on plans and students.
	mu sync.Mutex
}

func NewPaymentService(logger *zap.Logger, plans planRepo.PlanRepository, users userRepo.UserRepository) *DefaultPaymentService {
	return &DefaultPaymentService{
		Plans:  plans,
		Users:  users,
		logger: logger,
		now:    time.Now,
	}
}

var ErrPlanAccessDenied = errors.New("user is not a party to this plan")

func (s *DefaultPaymentService) ListPlans(ctx context.Context, userID int) ([]PlanView, error) {
	plans, err := s.Plans.GetByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	views := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, NewPlanView(p))
	}
	return views, nil
}

func (s *DefaultPaymentService) GetPlan(ctx context.Context, userID int, planID string) (*PlanView, error) {
	plan, err := s.loadPlanFor(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	view := NewPlanView(*plan)
	return &view, nil
}

func (s *DefaultPaymentService) loadPlanFor(ctx context.Context, userID int, planID string) (*models.PaymentPlan, error) {
	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.StudentID != userID && plan.MentorID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// ReleaseMilestone marks the milestone completed, unlocks the next one and issues
// a mock receipt against the selected bound method.
func (s *DefaultPaymentService) ReleaseMilestone(ctx context.Context, req ReleaseRequest) (*ReleaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.Plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.StudentID != req.StudentID {
		return nil, ErrNotPlanStudent
	}
	if err := ValidatePlan(*plan); err != nil {
		s.logger.Error("Refusing release on malformed plan", zap.String("plan", plan.ID), zap.Error(err))
		return nil, err
	}

	student, err := s.Users.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	if len(student.PaymentMethods) == 0 {
		utils.RecordMilestoneRelease("no_method")
		return nil, ErrNoPaymentMethod
	}
	if req.MethodIndex < 0 || req.MethodIndex >= len(student.PaymentMethods) {
		return nil, fmt.Errorf("method %d of %d: %w", req.MethodIndex, len(student.PaymentMethods), ErrInvalidPaymentMethod)
	}
	method := student.PaymentMethods[req.MethodIndex]

	next, err := ReleaseMilestone(*plan, req.MilestoneID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMilestoneNotFound):
			utils.RecordMilestoneRelease("not_found")
		case errors.Is(err, ErrMilestoneNotPending):
			utils.RecordMilestoneRelease("not_pending")
		}
		return nil, err
	}
	if err := s.Plans.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	released := next.Milestones[indexOf(next.Milestones, req.MilestoneID)]
	receipt := models.Receipt{
		ReceiptID:   uuid.New().String(),
		PlanID:      next.ID,
		MilestoneID: released.ID,
		Amount:      released.Amount,
		Currency:    next.Currency,
		Method:      MethodLabel(method),
		ReleasedAt:  s.now(),
	}
	utils.RecordMilestoneRelease("released")
	s.logger.Info("Milestone released",
		zap.String("plan", next.ID),
		zap.Int("milestone", released.ID),
		zap.String("amount", released.Amount.StringFixed(2)),
		zap.String("method", receipt.Method),
		zap.String("receipt", receipt.ReceiptID),
	)

	return &ReleaseResult{Plan: NewPlanView(next), Receipt: receipt}, nil
}

func (s *DefaultPaymentService) MilestoneQR(ctx context.Context, userID int, planID string, milestoneID int) ([]byte, error) {
	plan, err := s.loadPlanFor(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return MilestoneQR(*plan, milestoneID)
}

func (s *DefaultPaymentService) ListMethods(ctx context.Context, studentID int) ([]models.PaymentMethod, error) {
	student, err := s.Users.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return student.PaymentMethods, nil
}

// BindAlipay completes the (mocked) Alipay authorisation for the student.
func (s *DefaultPaymentService) BindAlipay(ctx context.Context, studentID int) ([]models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.Users.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	next, added := BindAlipay(student)
	if !added {
		s.logger.Debug("Alipay already bound", zap.Int("student", studentID))
		return next.PaymentMethods, nil
	}
	if err := s.Users.UpdateStudent(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save student: %w", err)
	}
	utils.RecordPaymentMethodBound(string(models.PaymentMethodAlipay))
	s.logger.Info("Alipay bound", zap.Int("student", studentID))
	return next.PaymentMethods, nil
}

func (s *DefaultPaymentService) AddCard(ctx context.Context, studentID int, cardNumber string) (models.CardMethod, []models.PaymentMethod, error) {
	if !ValidCardNumber(cardNumber) {
		return models.CardMethod{}, nil, ErrInvalidCardNumber
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.Users.GetStudent(ctx, studentID)
	if err != nil {
		return models.CardMethod{}, nil, err
	}
	next, card := AddCard(student, cardNumber)
	if err := s.Users.UpdateStudent(ctx, next); err != nil {
		return models.CardMethod{}, nil, fmt.Errorf("failed to save student: %w", err)
	}
	utils.RecordPaymentMethodBound(string(models.PaymentMethodCard))
	s.logger.Info("Card added", zap.Int("student", studentID), zap.String("brand", string(card.Brand)), zap.String("last4", card.Last4))
	return card, next.PaymentMethods, nil
}
