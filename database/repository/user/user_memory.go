package userRepo

import (
	"context"
	"fmt"
	"sync"

	"globaled/models"
)

// MemoryUserRepo implements UserRepository over seeded students and mentors.
type MemoryUserRepo struct {
	mu       sync.RWMutex
	students map[int]*models.Student
	mentors  map[int]models.Mentor
}

func NewMemoryUserRepo(students []*models.Student, mentors []models.Mentor) *MemoryUserRepo {
	repo := &MemoryUserRepo{
		students: make(map[int]*models.Student, len(students)),
		mentors:  make(map[int]models.Mentor, len(mentors)),
	}
	for _, s := range students {
		repo.students[s.ID] = s.Clone()
	}
	for _, m := range mentors {
		repo.mentors[m.ID] = m
	}
	return repo
}

func (r *MemoryUserRepo) GetByID(ctx context.Context, id int) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.students[id]; ok {
		return s.Clone(), nil
	}
	if m, ok := r.mentors[id]; ok {
		return &m, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
}

func (r *MemoryUserRepo) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.students[id]; ok {
		return s.Clone(), nil
	}
	if _, ok := r.mentors[id]; ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotStudent)
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
}

func (r *MemoryUserRepo) UpdateStudent(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return fmt.Errorf("user %d: %w", student.ID, ErrUserNotFound)
	}
	r.students[student.ID] = student.Clone()
	return nil
}
