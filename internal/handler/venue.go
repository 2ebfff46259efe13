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

// VenueHandler serves the venue reference-data pages.
type VenueHandler struct {
	Venues   *repository.VenueRepo
	Shows    *repository.ShowRepo
	Sessions session.Store
}

func NewVenueHandler(v *repository.VenueRepo, s *repository.ShowRepo, st session.Store) *VenueHandler {
	return &VenueHandler{Venues: v, Shows: s, Sessions: st}
}

// List handles GET /locatii. Besides the venue table it returns the next
// five upcoming shows with their venue.
func (h *VenueHandler) List(c echo.Context) error {
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
	vm["view"] = "locatii"
	vm["search"] = search
	vm["sortBy"] = sortBy
	vm["sortDir"] = sortDir

	ctx, cancel := reqCtx(c)
	defer cancel()

	venues, err := h.Venues.List(ctx, search, sortBy, sortDir)
	if err != nil {
		logrus.WithError(err).Error("venue listing failed")
		vm["error"] = "Could not load venues."
		return c.JSON(http.StatusInternalServerError, vm)
	}
	list := make([]echo.Map, 0, len(venues))
	for _, v := range venues {
		list = append(list, echo.Map{
			"id":         v.ID,
			"nume":       v.Name,
			"adresa":     v.Address,
			"oras":       v.City,
			"capacitate": v.Capacity,
		})
	}
	vm["locatiiList"] = list

	upcoming, err := h.Shows.UpcomingAtVenues(ctx, 5)
	if err != nil {
		logrus.WithError(err).Error("upcoming shows failed")
	} else {
		side := make([]echo.Map, 0, len(upcoming))
		for _, u := range upcoming {
			side = append(side, echo.Map{"loc": u.Venue, "show": u.Title, "data": u.Date})
		}
		vm["upcomingShows"] = side
	}
	return c.JSON(http.StatusOK, vm)
}

// parseVenueForm validates the shared add/edit fields: no digits in the
// city name, numeric capacity.
func parseVenueForm(c echo.Context) (repository.Venue, string) {
	var v repository.Venue
	city := c.FormValue("oras")
	if utils.HasDigits(city) {
		return v, "City cannot contain digits."
	}
	capacity, err := strconv.Atoi(c.FormValue("capacitate"))
	if err != nil {
		return v, "Capacity must be a valid number."
	}
	v = repository.Venue{
		Name:     c.FormValue("nume"),
		Address:  c.FormValue("adresa"),
		City:     city,
		Capacity: capacity,
	}
	return v, ""
}

// Add handles POST /locatie/add (admin only).
func (h *VenueHandler) Add(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/locatii"); !ok {
		return redir
	}
	v, msg := parseVenueForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Venues.Create(ctx, v); err != nil {
		logrus.WithError(err).Error("venue create failed")
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Could not add the venue."})
	}
	return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Success: "Venue added."})
}

// Edit handles POST /locatie/edit (admin only).
func (h *VenueHandler) Edit(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/locatii"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Venue id must be a valid number."})
	}
	v, msg := parseVenueForm(c)
	if msg != "" {
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: msg})
	}
	v.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Venues.Update(ctx, v); err != nil {
		logrus.WithError(err).WithField("venue_id", id).Error("venue update failed")
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Could not update the venue."})
	}
	return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Success: "Venue updated."})
}

// Delete handles POST /locatie/delete (admin only). A venue still hosting
// shows cannot be deleted; the constraint violation is reported, not
// cascaded.
func (h *VenueHandler) Delete(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/locatii"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Venue id must be a valid number."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Venue is still referenced by shows."})
		}
		logrus.WithError(err).WithField("venue_id", id).Error("venue delete failed")
		return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Error: "Could not delete the venue."})
	}
	return redirectFlash(c, h.Sessions, "/locatii", session.Flash{Success: "Venue deleted."})
}
