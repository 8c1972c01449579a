package payment

import (
	"errors"
	"fmt"
)

var (
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrMilestoneNotPending  = errors.New("milestone is not pending")
	ErrNoPaymentMethod      = errors.New("please add a payment method first")
	ErrInvalidPaymentMethod = errors.New("invalid payment method selection")
	ErrNotPlanStudent       = errors.New("only the plan's student can release funds")
	ErrInvalidCardNumber    = errors.New("card number must contain at least 4 digits")
)

// PlanError reports a malformed plan.
type PlanError struct {
	Code    string
	Message string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newPlanError(msg string) error {
	return &PlanError{
		Code:    "planError",
		Message: msg,
	}
}
