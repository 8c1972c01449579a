package postRepo

import (
	"context"
	"fmt"
	"sync"

	"globaled/models"
)

type MemoryPostRepo struct {
	mu     sync.RWMutex
	boards map[models.Board][]models.Post
	nextID int
}

func NewMemoryPostRepo(studentPosts, mentorPosts []models.Post) *MemoryPostRepo {
	repo := &MemoryPostRepo{
		boards: map[models.Board][]models.Post{
			models.BoardStudents: append([]models.Post(nil), studentPosts...),
			models.BoardMentors:  append([]models.Post(nil), mentorPosts...),
		},
	}
	for _, posts := range repo.boards {
		for _, p := range posts {
			if p.ID >= repo.nextID {
				repo.nextID = p.ID + 1
			}
		}
	}
	if repo.nextID == 0 {
		repo.nextID = 1
	}
	return repo
}

func (r *MemoryPostRepo) List(ctx context.Context, board models.Board) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts, ok := r.boards[board]
	if !ok {
		return nil, fmt.Errorf("%q: %w", board, ErrUnknownBoard)
	}
	return append([]models.Post{}, posts...), nil
}

func (r *MemoryPostRepo) Create(ctx context.Context, board models.Board, post models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, ok := r.boards[board]
	if !ok {
		return models.Post{}, fmt.Errorf("%q: %w", board, ErrUnknownBoard)
	}
	post.ID = r.nextID
	r.nextID++
	r.boards[board] = append([]models.Post{post}, posts...)
	return post, nil
}
