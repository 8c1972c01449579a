package userRepo

import (
	"context"
	"errors"

	"globaled/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotStudent   = errors.New("user is not a student")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID returns either a *models.Student or a *models.Mentor.
	GetByID(ctx context.Context, id int) (models.User, error)
	// GetStudent returns a copy of the student record.
	GetStudent(ctx context.Context, id int) (*models.Student, error)
	// UpdateStudent replaces the stored student record.
	UpdateStudent(ctx context.Context, student *models.Student) error
}
