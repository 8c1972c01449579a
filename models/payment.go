package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MilestoneStatus is the lifecycle state of a single milestone.
type MilestoneStatus string

const (
	MilestoneLocked    MilestoneStatus = "locked"
	MilestonePending   MilestoneStatus = "pending"
	MilestoneCompleted MilestoneStatus = "completed"
)

// Milestone is a unit of contracted work with its fee.
type Milestone struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
	Status  MilestoneStatus `json:"status"`
}

// PaymentPlan is the ordered milestone schedule agreed between a student and a mentor.
type PaymentPlan struct {
	ID          string          `json:"id"`
	StudentID   int             `json:"studentId"`
	MentorID    int             `json:"mentorId"`
	StudentName string          `json:"studentName"`
	MentorName  string          `json:"mentorName"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	Milestones  []Milestone     `json:"milestones"`
}

// Clone returns a deep copy of the plan.
func (p PaymentPlan) Clone() PaymentPlan {
	p.Milestones = append([]Milestone(nil), p.Milestones...)
	return p
}

// PaymentMethodKind discriminates PaymentMethod variants on the wire.
type PaymentMethodKind string

const (
	PaymentMethodAlipay PaymentMethodKind = "alipay"
	PaymentMethodCard   PaymentMethodKind = "credit_card"
)

// PaymentMethod is either an AlipayMethod or a CardMethod.
type PaymentMethod interface {
	Kind() PaymentMethodKind
	isPaymentMethod()
}

type AlipayMethod struct {
	Bound bool `json:"bound"`
}

func (AlipayMethod) Kind() PaymentMethodKind { return PaymentMethodAlipay }
func (AlipayMethod) isPaymentMethod()        {}

func (a AlipayMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  PaymentMethodKind `json:"type"`
		Bound bool              `json:"bound"`
	}{PaymentMethodAlipay, a.Bound})
}

// CardBrand is inferred from the card number; see payment.CardBrandFor.
type CardBrand string

const (
	CardVisa       CardBrand = "visa"
	CardMastercard CardBrand = "mastercard"
	CardAmex       CardBrand = "amex"
)

// CardMethod is always bound once added.
type CardMethod struct {
	Last4 string    `json:"last4"`
	Brand CardBrand `json:"brand"`
}

func (CardMethod) Kind() PaymentMethodKind { return PaymentMethodCard }
func (CardMethod) isPaymentMethod()        {}

func (c CardMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  PaymentMethodKind `json:"type"`
		Bound bool              `json:"bound"`
		Last4 string            `json:"last4"`
		Brand CardBrand         `json:"brand"`
	}{PaymentMethodCard, true, c.Last4, c.Brand})
}

// Receipt is the mock record of an escrow release. No money moves.
type Receipt struct {
	ReceiptID   string          `json:"receiptId"`
	PlanID      string          `json:"planId"`
	MilestoneID int             `json:"milestoneId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	ReleasedAt  time.Time       `json:"releasedAt"`
}
