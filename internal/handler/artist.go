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

// ArtistHandler serves the artist reference-data pages.
type ArtistHandler struct {
	Artists  *repository.ArtistRepo
	Sessions session.Store
}

func NewArtistHandler(a *repository.ArtistRepo, st session.Store) *ArtistHandler {
	return &ArtistHandler{Artists: a, Sessions: st}
}

// List handles GET /artisti.
func (h *ArtistHandler) List(c echo.Context) error {
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
	vm["view"] = "artisti"
	vm["search"] = search
	vm["sortBy"] = sortBy
	vm["sortDir"] = sortDir

	ctx, cancel := reqCtx(c)
	defer cancel()

	artists, err := h.Artists.List(ctx, search, sortBy, sortDir)
	if err != nil {
		logrus.WithError(err).Error("artist listing failed")
		vm["error"] = "Could not load artists."
		return c.JSON(http.StatusInternalServerError, vm)
	}
	list := make([]echo.Map, 0, len(artists))
	for _, a := range artists {
		list = append(list, echo.Map{
			"id":            a.ID,
			"nume":          a.Name,
			"prenume":       a.Surname,
			"nationalitate": a.Nationality,
			"varsta":        a.Age,
			"experienta":    a.Experience,
		})
	}
	vm["artistiList"] = list
	return c.JSON(http.StatusOK, vm)
}

// Add handles POST /artist/add (admin only). Age and experience default to
// zero when absent or malformed; nationality must not contain digits.
func (h *ArtistHandler) Add(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/artisti"); !ok {
		return redir
	}
	nationality := c.FormValue("nationalitate")
	if utils.HasDigits(nationality) {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Nationality cannot contain digits."})
	}
	age, _ := strconv.Atoi(c.FormValue("varsta"))
	exp, _ := strconv.Atoi(c.FormValue("experienta"))

	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Artists.Create(ctx, repository.Artist{
		Name:        c.FormValue("nume"),
		Surname:     c.FormValue("prenume"),
		Nationality: nationality,
		Age:         age,
		Experience:  exp,
	})
	if err != nil {
		logrus.WithError(err).Error("artist create failed")
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Could not add the artist."})
	}
	return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Success: "Artist added."})
}

// Edit handles POST /artist/edit (admin only). Unlike Add, malformed
// numeric fields are rejected.
func (h *ArtistHandler) Edit(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/artisti"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Artist id must be a valid number."})
	}
	nationality := c.FormValue("nationalitate")
	if utils.HasDigits(nationality) {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Nationality cannot contain digits."})
	}
	age, err := strconv.Atoi(c.FormValue("varsta"))
	if err != nil {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Age must be a valid number."})
	}
	exp, err := strconv.Atoi(c.FormValue("experienta"))
	if err != nil {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Experience must be a valid number."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	err = h.Artists.Update(ctx, repository.Artist{
		ID:          id,
		Name:        c.FormValue("nume"),
		Surname:     c.FormValue("prenume"),
		Nationality: nationality,
		Age:         age,
		Experience:  exp,
	})
	if err != nil {
		logrus.WithError(err).WithField("artist_id", id).Error("artist update failed")
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Could not update the artist."})
	}
	return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Success: "Artist updated."})
}

// Delete handles POST /artist/delete (admin only).
func (h *ArtistHandler) Delete(c echo.Context) error {
	if _, redir, ok := requireAdmin(c, h.Sessions, "/artisti"); !ok {
		return redir
	}
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Artist id must be a valid number."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Artists.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("artist_id", id).Error("artist delete failed")
		return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Error: "Could not delete the artist."})
	}
	return redirectFlash(c, h.Sessions, "/artisti", session.Flash{Success: "Artist deleted."})
}
