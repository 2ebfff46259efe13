package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/session"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// Default report range: wide enough to cover everything on file.
const (
	reportDefaultStart = "2024-01-01"
	reportDefaultEnd   = "2030-12-31"
)

// ReportHandler serves the admin sales report.
type ReportHandler struct {
	Reports  *repository.ReportRepo
	Sessions session.Store
}

func NewReportHandler(r *repository.ReportRepo, st session.Store) *ReportHandler {
	return &ReportHandler{Reports: r, Sessions: st}
}

// Report handles GET /raport (admin only; others are sent to the show
// listing). It assembles four independent aggregates plus a recent-shows
// check list.
func (h *ReportHandler) Report(c echo.Context) error {
	ses, ok := currentSession(c)
	if !ok || !ses.IsAdmin() {
		return c.Redirect(http.StatusSeeOther, "/spectacole")
	}

	startDate := c.QueryParam("startDate")
	if startDate == "" {
		startDate = reportDefaultStart
	}
	endDate := c.QueryParam("endDate")
	if endDate == "" {
		endDate = reportDefaultEnd
	}

	vm := viewModel(c, h.Sessions)
	vm["view"] = "raport"
	vm["startDate"] = startDate
	vm["endDate"] = endDate

	if !utils.ValidDate(startDate) || !utils.ValidDate(endDate) {
		vm["error"] = "Date format is invalid (expected YYYY-MM-DD)."
		return c.JSON(http.StatusBadRequest, vm)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sales, err := h.Reports.SalesByShow(ctx, startDate, endDate)
	if err != nil {
		return h.fail(c, vm, "sales by show", err)
	}
	salesList := make([]echo.Map, 0, len(sales))
	for _, s := range sales {
		salesList = append(salesList, echo.Map{"titlu": s.Title, "nr": s.Tickets, "total": s.Revenue})
	}
	vm["listaVanzari"] = salesList

	organizers, err := h.Reports.RevenueByOrganizer(ctx)
	if err != nil {
		return h.fail(c, vm, "revenue by organizer", err)
	}
	orgList := make([]echo.Map, 0, len(organizers))
	for _, o := range organizers {
		orgList = append(orgList, echo.Map{"nume": o.Name, "total": o.Revenue})
	}
	vm["topOrganizatori"] = orgList

	loyal, err := h.Reports.MostLoyalSpectator(ctx)
	if err != nil {
		return h.fail(c, vm, "most loyal spectator", err)
	}
	if loyal != nil {
		vm["fidel"] = fmt.Sprintf("%s (%d tickets)", loyal.Name, loyal.Tickets)
	} else {
		vm["fidel"] = "None"
	}

	occupancies, err := h.Reports.VenueOccupancies(ctx)
	if err != nil {
		return h.fail(c, vm, "venue occupancy", err)
	}
	occList := make([]echo.Map, 0, len(occupancies))
	for _, v := range occupancies {
		occList = append(occList, echo.Map{"nume": v.Name, "procent": v.Percent})
	}
	vm["gradOcupare"] = occList

	recent, err := h.Reports.RecentShows(ctx, 5)
	if err != nil {
		return h.fail(c, vm, "recent shows", err)
	}
	checkList := make([]string, 0, len(recent))
	for _, s := range recent {
		checkList = append(checkList, fmt.Sprintf("%s (at %s)", s.Title, s.Venue))
	}
	vm["checkList"] = checkList

	return c.JSON(http.StatusOK, vm)
}

func (h *ReportHandler) fail(c echo.Context, vm echo.Map, what string, err error) error {
	logrus.WithError(err).Errorf("report: %s failed", what)
	vm["error"] = "Could not build the report."
	return c.JSON(http.StatusInternalServerError, vm)
}
