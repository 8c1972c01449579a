package postRepo

import (
	"context"
	"errors"

	"globaled/models"
)

var ErrUnknownBoard = errors.New("unknown board")

// PostRepository holds the two append-only community boards.
type PostRepository interface {
	// List returns the board newest first.
	List(ctx context.Context, board models.Board) ([]models.Post, error)
	// Create assigns the post an id and prepends it to the board.
	Create(ctx context.Context, board models.Board, post models.Post) (models.Post, error)
}
