package community

import (
	"context"
	"testing"
	"time"

	postRepo "globaled/database/repository/post"
	"globaled/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DefaultCommunityService {
	svc := NewCommunityService(postRepo.NewMemoryPostRepo(
		[]models.Post{{ID: 1, Name: "Existing student"}},
		[]models.Post{{ID: 2, Name: "Existing mentor"}},
	))
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestStudentPostGoesToStudentBoard(t *testing.T) {
	svc := newTestService()
	student := &models.Student{
		BaseUser: models.BaseUser{ID: 21, Name: "Sophia Chen"},
		Profile:  models.StudentProfile{Background: "Senior at Fudan"},
	}

	post, err := svc.CreatePost(context.Background(), student, "  Need help with my SOP  ", "")
	require.NoError(t, err)
	assert.Equal(t, 3, post.ID)
	assert.Equal(t, "Need help with my SOP", post.Needs)
	assert.Equal(t, "Not specified", post.Target)
	assert.Equal(t, "Senior at Fudan", post.Background)
	assert.Empty(t, post.Services)

	board, err := svc.List(context.Background(), models.BoardStudents)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, post.ID, board[0].ID)

	mentors, err := svc.List(context.Background(), models.BoardMentors)
	require.NoError(t, err)
	assert.Len(t, mentors, 1)
}

func TestMentorPostGoesToMentorBoard(t *testing.T) {
	svc := newTestService()
	mentor := &models.Mentor{
		BaseUser:   models.BaseUser{ID: 6, Name: "Alex Chen"},
		University: "Carnegie Mellon University",
		Major:      "Machine Learning",
		Profile:    models.MentorProfile{Background: "PhD candidate"},
	}

	post, err := svc.CreatePost(context.Background(), mentor, "Mock interviews", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "Mock interviews", post.Services)
	assert.Equal(t, "Carnegie Mellon University", post.University)
	assert.Empty(t, post.Target)

	board, err := svc.List(context.Background(), models.BoardMentors)
	require.NoError(t, err)
	assert.Equal(t, post.ID, board[0].ID)
}

func TestEmptyPostRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreatePost(context.Background(), &models.Student{}, "   ", "MIT")
	assert.ErrorIs(t, err, ErrEmptyPost)

	board, err := svc.List(context.Background(), models.BoardStudents)
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func TestUnknownBoard(t *testing.T) {
	_, err := newTestService().List(context.Background(), models.Board("alumni"))
	assert.ErrorIs(t, err, postRepo.ErrUnknownBoard)
}
