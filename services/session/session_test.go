package session

import (
	"context"
	"testing"

	userRepo "globaled/database/repository/user"
	"globaled/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	students := []*models.Student{{BaseUser: models.BaseUser{ID: 21, Name: "Sophia Chen"}}}
	mentors := []models.Mentor{{BaseUser: models.BaseUser{ID: 6, Name: "Alex Chen"}}}
	return NewManager(userRepo.NewMemoryUserRepo(students, mentors), 21, 6, "")
}

func TestSessionStartsAsStudent(t *testing.T) {
	snap, err := newTestManager().Current(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.LoggedIn)
	assert.Equal(t, LangEnglish, snap.Lang)
	assert.Equal(t, models.RoleStudent, snap.User.Role())
	assert.Equal(t, 21, snap.User.Base().ID)
}

func TestSwitchRoleToggles(t *testing.T) {
	m := newTestManager()

	snap, err := m.SwitchRole(context.Background())
	require.NoError(t, err)
	mentor, ok := snap.User.(*models.Mentor)
	require.True(t, ok)
	assert.Equal(t, "Alex Chen", mentor.Name)

	snap, err = m.SwitchRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, snap.User.Role())
}

func TestSetLang(t *testing.T) {
	m := newTestManager()

	snap, err := m.SetLang(context.Background(), LangChinese)
	require.NoError(t, err)
	assert.Equal(t, LangChinese, snap.Lang)

	_, err = m.SetLang(context.Background(), "fr")
	assert.ErrorIs(t, err, ErrUnsupportedLang)

	snap, err = m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LangChinese, snap.Lang)
}
