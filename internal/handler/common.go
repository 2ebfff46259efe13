// Package handler implements the HTTP surface. GET routes build the named
// view-model maps consumed by the external rendering layer; POST routes
// validate, write and redirect with a one-time flash message. Authorization
// failures redirect without writing anything.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/middleware"
	"github.com/sovarares/standup-tickets/internal/session"
)

// dbTimeout bounds every data-store call made on behalf of a request.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentSession returns the session placed in context by the middleware.
func currentSession(c echo.Context) (session.Session, bool) {
	ses, ok := c.Get(middleware.SessionKey).(session.Session)
	return ses, ok
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.SessionIDKey).(string)
	return sid
}

// redirectFlash stores a one-time message for the current session and
// redirects. A failed flash write is logged and swallowed: the redirect
// matters more than the decoration.
func redirectFlash(c echo.Context, store session.Store, path string, f session.Flash) error {
	if sid := sessionID(c); sid != "" {
		if err := store.SetFlash(c.Request().Context(), sid, f); err != nil {
			logrus.WithError(err).Warn("failed to store flash message")
		}
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// viewModel starts a view-model map with the session and any pending flash
// popped from the store.
func viewModel(c echo.Context, store session.Store) echo.Map {
	vm := echo.Map{}
	ses, ok := currentSession(c)
	if !ok {
		return vm
	}
	vm["ses"] = ses
	if f, ok := store.PopFlash(c.Request().Context(), sessionID(c)); ok {
		if f.Success != "" {
			vm["success"] = f.Success
		}
		if f.Error != "" {
			vm["error"] = f.Error
		}
	}
	return vm
}

// requireAdmin enforces the admin role on mutating routes. Non-admins are
// bounced back to the given page with an error flash and no write happens.
func requireAdmin(c echo.Context, store session.Store, backTo string) (session.Session, error, bool) {
	ses, ok := currentSession(c)
	if !ok || !ses.IsAdmin() {
		return session.Session{}, redirectFlash(c, store, backTo, session.Flash{Error: "Not authorized."}), false
	}
	return ses, nil, true
}
