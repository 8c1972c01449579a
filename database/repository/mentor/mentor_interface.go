package mentorRepo

import (
	"context"
	"errors"

	"globaled/models"
)

var ErrMentorNotFound = errors.New("mentor not found")

// MentorRepository defines read access to the mentor catalog.
type MentorRepository interface {
	// GetAll returns the catalog in insertion order.
	GetAll(ctx context.Context) ([]models.Mentor, error)
	// GetByID returns ErrMentorNotFound when the id is not in the catalog.
	GetByID(ctx context.Context, id int) (*models.Mentor, error)
	GetReviews(ctx context.Context, mentorID int) ([]models.Review, error)
}
