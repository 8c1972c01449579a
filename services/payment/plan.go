package payment

import (
	"fmt"

	"globaled/models"

	"github.com/shopspring/decimal"
)

// ReleaseMilestone completes the pending milestone with the given id and unlocks
// the one after it. The input plan is never modified; on error the returned plan
// is an unchanged copy.
func ReleaseMilestone(plan models.PaymentPlan, milestoneID int) (models.PaymentPlan, error) {
	next := plan.Clone()

	idx := indexOf(next.Milestones, milestoneID)
	if idx == -1 {
		return next, fmt.Errorf("milestone %d: %w", milestoneID, ErrMilestoneNotFound)
	}
	if next.Milestones[idx].Status != models.MilestonePending {
		return next, fmt.Errorf("milestone %d is %s: %w", milestoneID, next.Milestones[idx].Status, ErrMilestoneNotPending)
	}

	next.Milestones[idx].Status = models.MilestoneCompleted
	if idx+1 < len(next.Milestones) && next.Milestones[idx+1].Status == models.MilestoneLocked {
		next.Milestones[idx+1].Status = models.MilestonePending
	}
	return next, nil
}

func indexOf(milestones []models.Milestone, id int) int {
	for i, m := range milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// ValidatePlan checks that at most one milestone is pending and every status is known.
func ValidatePlan(plan models.PaymentPlan) error {
	pending := 0
	for _, m := range plan.Milestones {
		switch m.Status {
		case models.MilestonePending:
			pending++
		case models.MilestoneLocked, models.MilestoneCompleted:
		default:
			return newPlanError(fmt.Sprintf("milestone %d has unknown status %q", m.ID, m.Status))
		}
	}
	if pending > 1 {
		return newPlanError(fmt.Sprintf("%d milestones pending, at most one allowed", pending))
	}
	return nil
}

// CurrentMilestone returns the pending milestone, if any.
func CurrentMilestone(plan models.PaymentPlan) (models.Milestone, bool) {
	for _, m := range plan.Milestones {
		if m.Status == models.MilestonePending {
			return m, true
		}
	}
	return models.Milestone{}, false
}

// PaidAmount sums the completed milestones.
func PaidAmount(plan models.PaymentPlan) decimal.Decimal {
	paid := decimal.Zero
	for _, m := range plan.Milestones {
		if m.Status == models.MilestoneCompleted {
			paid = paid.Add(m.Amount)
		}
	}
	return paid
}

// RemainingAmount is the plan total minus what has been released.
func RemainingAmount(plan models.PaymentPlan) decimal.Decimal {
	return plan.Total.Sub(PaidAmount(plan))
}
