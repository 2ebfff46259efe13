package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "standup_session"

// Context keys under which the resolved session is stored for handlers.
const (
	SessionKey   = "session"
	SessionIDKey = "session_id"
)

// RequireSession resolves the session cookie into a session.Session and
// stores it in the echo context. The cookie holds a signed token wrapping
// the server-side session id; a missing cookie, a bad signature or an
// expired record all redirect to the index page without touching anything.
func RequireSession(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			sid, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			ses, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			c.Set(SessionKey, ses)
			c.Set(SessionIDKey, sid)
			return next(c)
		}
	}
}
