package mentorRepo

import (
	"context"
	"sync"

	"globaled/models"
)

// MemoryMentorRepo implements MentorRepository over seeded fixtures.
type MemoryMentorRepo struct {
	mu      sync.RWMutex
	mentors []models.Mentor
	reviews map[int][]models.Review
}

func NewMemoryMentorRepo(mentors []models.Mentor, reviews map[int][]models.Review) *MemoryMentorRepo {
	if reviews == nil {
		reviews = map[int][]models.Review{}
	}
	return &MemoryMentorRepo{
		mentors: append([]models.Mentor(nil), mentors...),
		reviews: reviews,
	}
}

func (r *MemoryMentorRepo) GetAll(ctx context.Context) ([]models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Mentor(nil), r.mentors...), nil
}

func (r *MemoryMentorRepo) GetByID(ctx context.Context, id int) (*models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.mentors {
		if r.mentors[i].ID == id {
			m := r.mentors[i]
			return &m, nil
		}
	}
	return nil, ErrMentorNotFound
}

func (r *MemoryMentorRepo) GetReviews(ctx context.Context, mentorID int) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Review{}, r.reviews[mentorID]...), nil
}
