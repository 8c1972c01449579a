package planRepo

import (
	"context"
	"errors"

	"globaled/models"
)

var ErrPlanNotFound = errors.New("payment plan not found")

// PlanRepository stores payment plans. Plans are created by seeding only.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*models.PaymentPlan, error)
	// GetByParticipant returns plans where userID is the student or the mentor.
	GetByParticipant(ctx context.Context, userID int) ([]models.PaymentPlan, error)
	Update(ctx context.Context, plan models.PaymentPlan) error
}
