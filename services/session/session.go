package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	userRepo "globaled/database/repository/user"
	"globaled/models"
)

var ErrUnsupportedLang = errors.New("language must be en or zh")

const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// Snapshot is the session as seen by one request.
type Snapshot struct {
	User     models.User `json:"user"`
	Lang     string      `json:"lang"`
	LoggedIn bool        `json:"loggedIn"`
}

// Manager holds the single process-wide demo session. The current user is
// re-read from the repository on every snapshot so updates (bound payment
// methods) are visible immediately.
type Manager struct {
	users     userRepo.UserRepository
	studentID int
	mentorID  int

	mu        sync.RWMutex
	currentID int
	lang      string
}

// NewManager starts the session as the demo student.
func NewManager(users userRepo.UserRepository, studentID, mentorID int, lang string) *Manager {
	if lang != LangChinese {
		lang = LangEnglish
	}
	return &Manager{
		users:     users,
		studentID: studentID,
		mentorID:  mentorID,
		currentID: studentID,
		lang:      lang,
	}
}

func (m *Manager) Current(ctx context.Context) (Snapshot, error) {
	m.mu.RLock()
	id, lang := m.currentID, m.lang
	m.mu.RUnlock()

	user, err := m.users.GetByID(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session user: %w", err)
	}
	return Snapshot{User: user, Lang: lang, LoggedIn: true}, nil
}

// SwitchRole toggles between the demo student and the demo mentor.
func (m *Manager) SwitchRole(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	if m.currentID == m.studentID {
		m.currentID = m.mentorID
	} else {
		m.currentID = m.studentID
	}
	m.mu.Unlock()
	return m.Current(ctx)
}

func (m *Manager) SetLang(ctx context.Context, lang string) (Snapshot, error) {
	if lang != LangEnglish && lang != LangChinese {
		return Snapshot{}, fmt.Errorf("%q: %w", lang, ErrUnsupportedLang)
	}
	m.mu.Lock()
	m.lang = lang
	m.mu.Unlock()
	return m.Current(ctx)
}
