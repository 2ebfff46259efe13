package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// OrganizerHandler serves the organizer reference-data pages.
type OrganizerHandler struct {
	Organizers *repository.OrganizerRepo
	Shows      *repository.ShowRepo
	Sessions   session.Store
}

func NewOrganizerHandler(o *repository.OrganizerRepo, s *repository.ShowRepo, st session.Store) *OrganizerHandler {
	return &OrganizerHandler{Organizers: o, Shows: s, Sessions: st}
}

// List handles GET /organizatori. Besides the organizer table it returns
// the five most recent shows with their organizer.
func (h *OrganizerHandler) List(c echo.Context) error {
	search := c.QueryParam("q")
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "NUME"
	}
	sortDir := c.QueryParam("sortDir")
	if sortDir == "" {
		sortDir = "ASC"
	}

	vm := viewModel(c, h.Sessions)
	vm["view"] = "organizatori"
	vm["search"] = search
	vm["sortBy"] = sortBy
	vm["sortDir"] = sortDir

	ctx, cancel := reqCtx(c)
	defer cancel()

	organizers, err := h.Organizers.List(ctx, search, sortBy, sortDir)
	if err != nil {
		logrus.WithError(err).Error("organizer listing failed")
		vm["error"] = "Could not load organizers."
		return c.JSON(http.StatusInternalServerError, vm)
	}
	list := make([]echo.Map, 0, len(organizers))
	for _, o := range organizers {
		list = append(list, echo.Map{
			"id":      o.ID,
			"nume":    o.Name,
			"email":   o.Email,
			"telefon": o.Phone,
		})
	}
	vm["organizatoriList"] = list

	recent, err := h.Shows.RecentByOrganizer(ctx, 5)
	if err != nil {
		logrus.WithError(err).Error("recent organizer shows failed")
	} else {
		side := make([]echo.Map, 0, len(recent))
		for _, r := range recent {
			side = append(side, echo.Map{"org": r.Organizer, "show": r.Title})
		}
		vm["recentShows"] = side
	}
	return c.JSON(http.StatusOK, vm)
}

// parseOrganizerForm validates the shared add/edit fields: the legacy email
// rule and the 10-digit phone rule, same as spectator registration.
func parseOrganizerForm(c echo.Context) (repository.Organizer, string) {
	var o repository.Organizer
	email := c.FormValue("email")
	if !utils.ValidEmail(email) {
		return o, "Email must be a @gmail.com address."
	}
	phone := c.FormValue("telefon")
	if !utils.ValidPhone(phone) {
		return o, "Phone number must contain exactly 10 digits."
	}
	o = repository.Organizer{
		Name:  c.FormValue("nume"),
		Email: email,
		Phone: phone,
	}
	return o, ""
}

// Add handles POST /organizator/add (admin only).
func (h *OrganizerHandler) Add(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/organizatori"); !ok {
		return redir
	}
	o, msg := parseOrganizerForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Organizers.Create(ctx, o); err != nil {
		logrus.WithError(err).Error("organizer create failed")
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Could not add the organizer."})
	}
	return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Success: "Organizer added."})
}

// Edit handles POST /organizator/edit (admin only).
func (h *OrganizerHandler) Edit(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/organizatori"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Organizer id must be a valid number."})
	}
	o, msg := parseOrganizerForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: msg})
	}
	o.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Organizers.Update(ctx, o); err != nil {
		logrus.WithError(err).WithField("organizer_id", id).Error("organizer update failed")
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Could not update the organizer."})
	}
	return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Success: "Organizer updated."})
}

// Delete handles POST /organizator/delete (admin only). An organizer still
// referenced by shows cannot be deleted; the violation is reported, not
// cascaded.
func (h *OrganizerHandler) Delete(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/organizatori"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Organizer id must be a valid number."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Organizers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Organizer is still referenced by shows."})
		}
		logrus.WithError(err).WithField("organizer_id", id).Error("organizer delete failed")
		return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Error: "Could not delete the organizer."})
	}
	return redirectFlash(c, h.Sessions, "/organizatori", session.Flash{Success: "Organizer deleted."})
}
