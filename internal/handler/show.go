package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// ShowHandler serves the show listing and the admin-only mutations.
type ShowHandler struct {
	Shows    *repository.ShowRepo
	Sessions session.Store
}

func NewShowHandler(s *repository.ShowRepo, st session.Store) *ShowHandler {
	return &ShowHandler{Shows: s, Sessions: st}
}

// List handles GET /spectacole.
func (h *ShowHandler) List(c echo.Context) error {
	search := c.QueryParam("q")
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "DATA"
	}
	sortDir := c.QueryParam("sortDir")
	if sortDir == "" {
		sortDir = "ASC"
	}

	vm := viewModel(c, h.Sessions)
	vm["view"] = "spectacole"
	vm["search"] = search
	vm["sortBy"] = sortBy
	vm["sortDir"] = sortDir

	ctx, cancel := reqCtx(c)
	defer cancel()

	shows, err := h.Shows.List(ctx, repository.ShowQuery{Search: search, SortBy: sortBy, SortDir: sortDir})
	if err != nil {
		logrus.WithError(err).Error("show listing failed")
		vm["error"] = "Could not load shows."
		return c.JSON(http.StatusInternalServerError, vm)
	}

	list := make([]echo.Map, 0, len(shows))
	for _, s := range shows {
		list = append(list, echo.Map{
			"id":             s.ID,
			"titlu":          s.Title,
			"data":           s.Date,
			"ora":            s.Time,
			"pret":           s.Price,
			"locatie":        s.Venue,
			"organizator":    s.Organizer,
			"id_locatie":     s.VenueID,
			"id_organizator": s.OrganizerID,
		})
	}
	vm["spectacoleList"] = list
	return c.JSON(http.StatusOK, vm)
}

// parseShowForm validates the add/edit form fields. It returns a human
// message on the first violation.
func parseShowForm(c echo.Context) (repository.ShowInput, string) {
	var in repository.ShowInput

	venueID, err := strconv.ParseInt(c.FormValue("idloc"), 10, 64)
	if err != nil {
		return in, "Venue id must be a valid number."
	}
	organizerID, err := strconv.ParseInt(c.FormValue("idorg"), 10, 64)
	if err != nil {
		return in, "Organizer id must be a valid number."
	}
	price := c.FormValue("pret")
	if !utils.ValidPrice(price) {
		return in, "Price must be a valid number."
	}
	date := c.FormValue("data")
	if !utils.ValidDate(date) {
		return in, "Date format is invalid (expected YYYY-MM-DD)."
	}
	clock, ok := utils.NormalizeTime(c.FormValue("ora"))
	if !ok {
		return in, "Time format is invalid (expected HH:MM or HH:MM:SS)."
	}

	in = repository.ShowInput{
		Title:       c.FormValue("titlu"),
		Date:        date,
		Time:        clock,
		Price:       price,
		VenueID:     venueID,
		OrganizerID: organizerID,
	}
	return in, ""
}

// Add handles POST /spectacol/add (admin only).
func (h *ShowHandler) Add(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/spectacole"); !ok {
		return redir
	}
	in, msg := parseShowForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Shows.Create(ctx, in); err != nil {
		logrus.WithError(err).Error("show create failed")
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Could not add the show."})
	}
	return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Success: "Show added."})
}

// Edit handles POST /spectacol/edit (admin only). A venue or organizer id
// of zero or less clears the reference instead of failing.
func (h *ShowHandler) Edit(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/spectacole"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Show id must be a valid number."})
	}
	in, msg := parseShowForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Shows.Update(ctx, id, in); err != nil {
		logrus.WithError(err).WithField("show_id", id).Error("show update failed")
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Could not update the show."})
	}
	return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Success: "Show updated."})
}

// Delete handles POST /spectacol/delete (admin only). Tickets for the show
// go first, in the same transaction.
func (h *ShowHandler) Delete(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/spectacole"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Show id must be a valid number."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Shows.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("show_id", id).Error("show delete failed")
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Could not delete the show."})
	}
	return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Success: "Show deleted."})
}
