package mentor

import (
	"context"
	"fmt"

	mentorRepo "globaled/database/repository/mentor"
	"globaled/models"
)

// MentorService serves the mentor directory.
type MentorService interface {
	Search(ctx context.Context, f Filter, currentUserID int) ([]models.Mentor, error)
	Facets(ctx context.Context, currentUserID int) (Facets, error)
	GetMentor(ctx context.Context, id int) (*models.Mentor, error)
	GetReviews(ctx context.Context, id int) ([]models.Review, error)
	// Catalog is the full list the AI assistant recommends from.
	Catalog(ctx context.Context) ([]models.Mentor, error)
}

type DefaultMentorService struct {
	Repo mentorRepo.MentorRepository
}

func (s *DefaultMentorService) Search(ctx context.Context, f Filter, currentUserID int) ([]models.Mentor, error) {
	catalog, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentors: %w", err)
	}
	return FilterMentors(catalog, f, currentUserID), nil
}

func (s *DefaultMentorService) Facets(ctx context.Context, currentUserID int) (Facets, error) {
	catalog, err := s.Repo.GetAll(ctx)
	if err != nil {
		return Facets{}, fmt.Errorf("failed to load mentors: %w", err)
	}
	return BuildFacets(catalog, currentUserID), nil
}

func (s *DefaultMentorService) GetMentor(ctx context.Context, id int) (*models.Mentor, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultMentorService) GetReviews(ctx context.Context, id int) ([]models.Review, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.GetReviews(ctx, id)
}

func (s *DefaultMentorService) Catalog(ctx context.Context) ([]models.Mentor, error) {
	return s.Repo.GetAll(ctx)
}
