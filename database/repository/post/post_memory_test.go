package postRepo

import (
	"context"
	"testing"

	"globaled/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrependsWithFreshID(t *testing.T) {
	repo := NewMemoryPostRepo(
		[]models.Post{{ID: 3, Name: "Sophia"}, {ID: 4, Name: "David"}},
		[]models.Post{{ID: 1, Name: "Alex"}},
	)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.BoardMentors, models.Post{Name: "Emily"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	board, err := repo.List(ctx, models.BoardMentors)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Emily", board[0].Name)
	assert.Equal(t, "Alex", board[1].Name)

	students, err := repo.List(ctx, models.BoardStudents)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	_, err = repo.Create(ctx, models.Board("alumni"), models.Post{})
	assert.ErrorIs(t, err, ErrUnknownBoard)
}
