package planRepo

import (
	"context"
	"fmt"
	"sync"

	"globaled/models"
)

type MemoryPlanRepo struct {
	mu    sync.RWMutex
	order []string
	plans map[string]models.PaymentPlan
}

func NewMemoryPlanRepo(plans []models.PaymentPlan) *MemoryPlanRepo {
	repo := &MemoryPlanRepo{plans: make(map[string]models.PaymentPlan, len(plans))}
	for _, p := range plans {
		repo.order = append(repo.order, p.ID)
		repo.plans[p.ID] = p.Clone()
	}
	return repo
}

func (r *MemoryPlanRepo) GetByID(ctx context.Context, id string) (*models.PaymentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrPlanNotFound)
	}
	cp := p.Clone()
	return &cp, nil
}

func (r *MemoryPlanRepo) GetByParticipant(ctx context.Context, userID int) ([]models.PaymentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.PaymentPlan
	for _, id := range r.order {
		p := r.plans[id]
		if p.StudentID == userID || p.MentorID == userID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *MemoryPlanRepo) Update(ctx context.Context, plan models.PaymentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return fmt.Errorf("plan %s: %w", plan.ID, ErrPlanNotFound)
	}
	r.plans[plan.ID] = plan.Clone()
	return nil
}
