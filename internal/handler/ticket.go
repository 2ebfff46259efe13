package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/queue"
	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/service"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// TicketHandler serves ticket purchase and the ticket listing.
type TicketHandler struct {
	Tickets   *repository.TicketRepo
	Sessions  session.Store
	Publisher service.EventPublisher // nil disables purchase events
}

func NewTicketHandler(t *repository.TicketRepo, st session.Store, pub service.EventPublisher) *TicketHandler {
	return &TicketHandler{Tickets: t, Sessions: st, Publisher: pub}
}

// Buy handles POST /bilet/buy. Only sessions carrying a spectator id can
// purchase; an admin account without a spectator profile is rejected before
// any write.
func (h *TicketHandler) Buy(c echo.Context) error {
	ses, ok := currentSession(c)
	if !ok || ses.SpectatorID == nil {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "You cannot buy tickets with this account."})
	}
	showID, err := strconv.ParseInt(c.FormValue("id_spectacol"), 10, 64)
	if err != nil {
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Show id must be a valid number."})
	}

	code := utils.NewTicketCode()

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tickets.Buy(ctx, showID, *ses.SpectatorID, code); err != nil {
		logrus.WithError(err).WithField("show_id", showID).Error("ticket purchase failed")
		return redirectFlash(c, h.Sessions, "/spectacole", session.Flash{Error: "Could not buy the ticket."})
	}

	if h.Publisher != nil {
		// Best effort: a broker outage never fails the sale.
		_ = h.Publisher.PublishTicketPurchased(ctx, queue.TicketPurchasedEvent{
			Code:        code,
			ShowID:      showID,
			SpectatorID: *ses.SpectatorID,
			Username:    ses.Username,
			PurchasedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return redirectFlash(c, h.Sessions, "/bilete", session.Flash{Success: "Ticket purchased! Code: " + code})
}

// List handles GET /bilete. Non-admins only ever see their own tickets;
// admins see everything plus the three most recent purchases.
func (h *TicketHandler) List(c echo.Context) error {
	ses, _ := currentSession(c)

	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "DATA"
	}
	sortDir := c.QueryParam("sortDir")
	if sortDir == "" {
		sortDir = "DESC"
	}

	vm := viewModel(c, h.Sessions)
	vm["view"] = "bilete"
	vm["sortBy"] = sortBy
	vm["sortDir"] = sortDir

	q := repository.TicketQuery{SortBy: sortBy, SortDir: sortDir}
	if !ses.IsAdmin() {
		if ses.SpectatorID == nil {
			vm["bileteList"] = []echo.Map{}
			return c.JSON(http.StatusOK, vm)
		}
		q.SpectatorID = ses.SpectatorID
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tickets, err := h.Tickets.List(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("ticket listing failed")
		vm["error"] = "Could not load tickets."
		return c.JSON(http.StatusInternalServerError, vm)
	}
	list := make([]echo.Map, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, echo.Map{
			"id":             t.ID,
			"spectacol":      t.ShowTitle,
			"spectator":      t.Spectator,
			"data_cumparare": t.PurchasedAt,
			"cod":            t.Code,
		})
	}
	vm["bileteList"] = list

	if ses.IsAdmin() {
		recent, err := h.Tickets.Recent(ctx, 3)
		if err != nil {
			logrus.WithError(err).Error("recent tickets failed")
		} else {
			side := make([]echo.Map, 0, len(recent))
			for _, t := range recent {
				side = append(side, echo.Map{
					"cod":  t.Code,
					"info": t.ShowTitle + " -> " + t.Spectator,
				})
			}
			vm["recentTickets"] = side
		}
	}
	return c.JSON(http.StatusOK, vm)
}
