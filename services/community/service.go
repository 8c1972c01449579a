package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	postRepo "globaled/database/repository/post"
	"globaled/models"
)

var ErrEmptyPost = errors.New("post content is empty")

const defaultTarget = "Not specified"

// CommunityService serves the student and mentor boards.
type CommunityService interface {
	List(ctx context.Context, board models.Board) ([]models.Post, error)
	// CreatePost publishes to the board matching the author's role.
	CreatePost(ctx context.Context, author models.User, content, target string) (models.Post, error)
}

type DefaultCommunityService struct {
	Repo postRepo.PostRepository
	now  func() time.Time
}

func NewCommunityService(repo postRepo.PostRepository) *DefaultCommunityService {
	return &DefaultCommunityService{Repo: repo, now: time.Now}
}

func (s *DefaultCommunityService) List(ctx context.Context, board models.Board) ([]models.Post, error) {
	return s.Repo.List(ctx, board)
}

func (s *DefaultCommunityService) CreatePost(ctx context.Context, author models.User, content, target string) (models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, ErrEmptyPost
	}

	base := author.Base()
	post := models.Post{
		UserID:    base.ID,
		Name:      base.Name,
		Avatar:    base.Avatar,
		Verified:  base.Verified,
		CreatedAt: s.now(),
	}

	var board models.Board
	switch u := author.(type) {
	case *models.Student:
		board = models.BoardStudents
		post.Background = u.Profile.Background
		post.Needs = content
		post.Target = strings.TrimSpace(target)
		if post.Target == "" {
			post.Target = defaultTarget
		}
	case *models.Mentor:
		board = models.BoardMentors
		post.University = u.University
		post.Major = u.Major
		post.Background = u.Profile.Background
		post.Services = content
	default:
		return models.Post{}, fmt.Errorf("unsupported author type %T", author)
	}

	created, err := s.Repo.Create(ctx, board, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}
