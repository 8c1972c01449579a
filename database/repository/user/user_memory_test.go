package userRepo

import (
	"context"
	"testing"

	"globaled/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepo(t *testing.T) {
	repo := NewMemoryUserRepo(
		[]*models.Student{{BaseUser: models.BaseUser{ID: 21, Name: "Sophia"}}},
		[]models.Mentor{{BaseUser: models.BaseUser{ID: 6, Name: "Alex"}}},
	)
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMentor, u.Role())

	_, err = repo.GetStudent(ctx, 6)
	assert.ErrorIs(t, err, ErrNotStudent)
	_, err = repo.GetStudent(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	s, err := repo.GetStudent(ctx, 21)
	require.NoError(t, err)
	s.PaymentMethods = append(s.PaymentMethods, models.AlipayMethod{Bound: true})

	fresh, err := repo.GetStudent(ctx, 21)
	require.NoError(t, err)
	assert.Empty(t, fresh.PaymentMethods)

	require.NoError(t, repo.UpdateStudent(ctx, s))
	fresh, err = repo.GetStudent(ctx, 21)
	require.NoError(t, err)
	assert.Len(t, fresh.PaymentMethods, 1)
}
