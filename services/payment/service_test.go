package payment

import (
	"context"
	"testing"
	"time"

	planRepo "globaled/database/repository/plan"
	userRepo "globaled/database/repository/user"
	"globaled/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	studentID = 21
	mentorID  = 1
)

func newTestService(t *testing.T, methods ...models.PaymentMethod) *DefaultPaymentService {
	t.Helper()
	plan := testPlan(models.MilestonePending, models.MilestoneLocked, models.MilestoneLocked)
	plan.StudentID = studentID
	plan.MentorID = mentorID

	students := []*models.Student{{BaseUser: models.BaseUser{ID: studentID, Name: "Sophia"}, PaymentMethods: methods}}
	mentors := []models.Mentor{{BaseUser: models.BaseUser{ID: mentorID, Name: "Zhang Wei"}}}

	svc := NewPaymentService(zap.NewNop(), planRepo.NewMemoryPlanRepo([]models.PaymentPlan{plan}), userRepo.NewMemoryUserRepo(students, mentors))
	svc.now = func() time.Time { return time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceReleaseRequiresPaymentMethod(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ReleaseMilestone(context.Background(), ReleaseRequest{StudentID: studentID, PlanID: "plan-1", MilestoneID: 1})
	assert.ErrorIs(t, err, ErrNoPaymentMethod)

	view, err := svc.GetPlan(context.Background(), studentID, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, models.MilestonePending, view.Milestones[0].Status)
}

func TestServiceReleaseStoresPlanAndIssuesReceipt(t *testing.T) {
	svc := newTestService(t, models.AlipayMethod{Bound: true}, models.CardMethod{Last4: "4242", Brand: models.CardVisa})
	ctx := context.Background()

	res, err := svc.ReleaseMilestone(ctx, ReleaseRequest{StudentID: studentID, PlanID: "plan-1", MilestoneID: 1, MethodIndex: 1})
	require.NoError(t, err)

	assert.Equal(t, "Visa ending in 4242", res.Receipt.Method)
	assert.Equal(t, 1, res.Receipt.MilestoneID)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Receipt.Amount))
	assert.NotEmpty(t, res.Receipt.ReceiptID)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Plan.Paid))
	require.NotNil(t, res.Plan.Current)
	assert.Equal(t, 2, res.Plan.Current.ID)

	stored, err := svc.GetPlan(ctx, mentorID, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, []models.MilestoneStatus{models.MilestoneCompleted, models.MilestonePending, models.MilestoneLocked}, statuses(stored.PaymentPlan))

	_, err = svc.ReleaseMilestone(ctx, ReleaseRequest{StudentID: studentID, PlanID: "plan-1", MilestoneID: 1})
	assert.ErrorIs(t, err, ErrMilestoneNotPending)
}

func TestServiceReleaseRejectsOtherParties(t *testing.T) {
	svc := newTestService(t, models.AlipayMethod{Bound: true})

	_, err := svc.ReleaseMilestone(context.Background(), ReleaseRequest{StudentID: mentorID, PlanID: "plan-1", MilestoneID: 1})
	assert.ErrorIs(t, err, ErrNotPlanStudent)

	_, err = svc.GetPlan(context.Background(), 99, "plan-1")
	assert.ErrorIs(t, err, ErrPlanAccessDenied)
}

func TestServiceReleaseInvalidMethodIndex(t *testing.T) {
	svc := newTestService(t, models.AlipayMethod{Bound: true})

	_, err := svc.ReleaseMilestone(context.Background(), ReleaseRequest{StudentID: studentID, PlanID: "plan-1", MilestoneID: 1, MethodIndex: 3})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestServiceBindAlipayTwice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.BindAlipay(ctx, studentID)
	require.NoError(t, err)
	methods, err := svc.BindAlipay(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, methods, 1)

	stored, err := svc.ListMethods(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestServiceAddCard(t *testing.T) {
	svc := newTestService(t)

	card, methods, err := svc.AddCard(context.Background(), studentID, "5555555555554444")
	require.NoError(t, err)
	assert.Equal(t, models.CardMastercard, card.Brand)
	assert.Len(t, methods, 1)

	_, _, err = svc.AddCard(context.Background(), mentorID, "4242")
	assert.ErrorIs(t, err, userRepo.ErrNotStudent)
}

func TestServiceAddCardRejectsShortNumbers(t *testing.T) {
	svc := newTestService(t)

	for _, number := range []string{"    ", "1 2 ", "--12-", "12ab34"} {
		_, _, err := svc.AddCard(context.Background(), studentID, number)
		assert.ErrorIs(t, err, ErrInvalidCardNumber, number)
	}
	methods, err := svc.ListMethods(context.Background(), studentID)
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestServiceReleaseRejectsMalformedPlan(t *testing.T) {
	plan := testPlan(models.MilestonePending, models.MilestonePending)
	plan.StudentID = studentID
	students := []*models.Student{{BaseUser: models.BaseUser{ID: studentID}, PaymentMethods: []models.PaymentMethod{models.AlipayMethod{Bound: true}}}}
	svc := NewPaymentService(zap.NewNop(), planRepo.NewMemoryPlanRepo([]models.PaymentPlan{plan}), userRepo.NewMemoryUserRepo(students, nil))

	_, err := svc.ReleaseMilestone(context.Background(), ReleaseRequest{StudentID: studentID, PlanID: "plan-1", MilestoneID: 1})
	var planErr *PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, "planError", planErr.Code)
}
