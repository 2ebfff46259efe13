package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/config"
	"github.com/sovarares/standup-tickets/internal/middleware"
	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// AuthHandler bundles dependencies for login, registration and logout.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// indexView renders the login/register page view model, optionally with an
// inline error or success message. Validation problems come back on the
// same page rather than through a flash redirect.
func indexView(c echo.Context, status int, extra echo.Map) error {
	vm := echo.Map{"view": "index"}
	for k, v := range extra {
		vm[k] = v
	}
	return c.JSON(status, vm)
}

// Index handles GET /. A visitor with a live session goes straight to the
// show listing.
func (h *AuthHandler) Index(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); err == nil {
			if _, err := h.Sessions.Get(c.Request().Context(), sid); err == nil {
				return c.Redirect(http.StatusSeeOther, "/spectacole")
			}
		}
	}
	return indexView(c, http.StatusOK, nil)
}

// Login handles POST /login. Empty fields are a validation error; a wrong
// username and a wrong password produce the same generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || strings.TrimSpace(password) == "" {
		return indexView(c, http.StatusBadRequest, echo.Map{"error": "Username and password are required."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return indexView(c, http.StatusUnauthorized, echo.Map{"error": "Wrong username or password."})
		}
		logrus.WithError(err).WithField("username", username).Error("login query failed")
		return indexView(c, http.StatusInternalServerError, echo.Map{"error": "Something went wrong, try again."})
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return indexView(c, http.StatusUnauthorized, echo.Map{"error": "Wrong username or password."})
	}

	sid, err := utils.NewSessionID()
	if err != nil {
		return indexView(c, http.StatusInternalServerError, echo.Map{"error": "Something went wrong, try again."})
	}
	ses := session.Session{Username: u.Username, Role: u.Role, SpectatorID: u.SpectatorID}
	if err := h.Sessions.Create(ctx, sid, ses); err != nil {
		logrus.WithError(err).Error("session create failed")
		return indexView(c, http.StatusInternalServerError, echo.Map{"error": "Something went wrong, try again."})
	}

	ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
	token, err := utils.SignSessionToken(h.Cfg.SessionSecret, sid, ttl)
	if err != nil {
		return indexView(c, http.StatusInternalServerError, echo.Map{"error": "Something went wrong, try again."})
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/spectacole")
}

// Register handles POST /register. All fields are required; the password
// needs at least 5 characters, the email must contain "@gmail.com" and the
// phone exactly 10 digits. The spectator profile and the account are
// created in one transaction with the role fixed to "user".
func (h *AuthHandler) Register(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("regUsername"))
	password := c.FormValue("regPassword")
	name := strings.TrimSpace(c.FormValue("regNume"))
	email := strings.TrimSpace(c.FormValue("regEmail"))
	phone := strings.TrimSpace(c.FormValue("regTelefon"))

	if username == "" || utils.IsBlank(password) || name == "" || email == "" || phone == "" {
		return indexView(c, http.StatusBadRequest, echo.Map{"error": "All fields are required."})
	}
	if len(password) < 5 {
		return indexView(c, http.StatusBadRequest, echo.Map{"error": "Password must have at least 5 characters."})
	}
	if !utils.ValidEmail(email) {
		return indexView(c, http.StatusBadRequest, echo.Map{"error": "Email must be a @gmail.com address."})
	}
	if !utils.ValidPhone(phone) {
		return indexView(c, http.StatusBadRequest, echo.Map{"error": "Phone number must contain exactly 10 digits."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.Register(ctx, username, password, name, email, phone, h.Cfg.BcryptCost); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return indexView(c, http.StatusConflict, echo.Map{"error": "This username is already taken."})
		case errors.Is(err, repository.ErrContactTaken):
			return indexView(c, http.StatusConflict, echo.Map{"error": "This email or phone is already registered."})
		default:
			logrus.WithError(err).WithField("username", username).Error("register failed")
			return indexView(c, http.StatusInternalServerError, echo.Map{"error": "Something went wrong, try again."})
		}
	}
	return indexView(c, http.StatusOK, echo.Map{"success": "Account created. You can now log in."})
}

// Logout handles GET /logout: the server-side session record is deleted
// and the cookie expired.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); err == nil {
			if err := h.Sessions.Delete(c.Request().Context(), sid); err != nil {
				logrus.WithError(err).Warn("session delete failed")
			}
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}
