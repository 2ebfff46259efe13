package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovarares/standup-tickets/internal/middleware"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func (m *memStore) Create(_ context.Context, id string, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) SetFlash(context.Context, string, session.Flash) error { return nil }

func (m *memStore) PopFlash(context.Context, string) (session.Flash, bool) {
	return session.Flash{}, false
}

const secret = "test-secret"

func run(t *testing.T, store session.Store, cookie *http.Cookie) (*httptest.ResponseRecorder, bool, session.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/spectacole", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	called := false
	var got session.Session
	next := func(c echo.Context) error {
		called = true
		got, _ = c.Get(middleware.SessionKey).(session.Session)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, middleware.RequireSession(secret, store)(next)(c))
	return rec, called, got
}

func TestRequireSessionNoCookie(t *testing.T) {
	store := &memStore{sessions: map[string]session.Session{}}

	rec, called, _ := run(t, store, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireSessionBadToken(t *testing.T) {
	store := &memStore{sessions: map[string]session.Session{}}

	rec, called, _ := run(t, store, &http.Cookie{Name: middleware.CookieName, Value: "garbage"})
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireSessionExpiredRecord(t *testing.T) {
	// a validly signed token whose server-side record is gone
	store := &memStore{sessions: map[string]session.Session{}}
	token, err := utils.SignSessionToken(secret, "dead-sid", time.Hour)
	require.NoError(t, err)

	rec, called, _ := run(t, store, &http.Cookie{Name: middleware.CookieName, Value: token})
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireSessionResolvesSession(t *testing.T) {
	spectatorID := int64(7)
	store := &memStore{sessions: map[string]session.Session{
		"live-sid": {Username: "ana", Role: "user", SpectatorID: &spectatorID},
	}}
	token, err := utils.SignSessionToken(secret, "live-sid", time.Hour)
	require.NoError(t, err)

	rec, called, got := run(t, store, &http.Cookie{Name: middleware.CookieName, Value: token})
	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", got.Username)
	assert.False(t, got.IsAdmin())
	require.NotNil(t, got.SpectatorID)
	assert.Equal(t, spectatorID, *got.SpectatorID)
}

func TestRequireSessionWrongSecret(t *testing.T) {
	spectatorID := int64(7)
	store := &memStore{sessions: map[string]session.Session{
		"live-sid": {Username: "ana", Role: "user", SpectatorID: &spectatorID},
	}}
	token, err := utils.SignSessionToken("other-secret", "live-sid", time.Hour)
	require.NoError(t, err)

	rec, called, _ := run(t, store, &http.Cookie{Name: middleware.CookieName, Value: token})
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
