package router // package router wires the HTTP routes to their handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/sovarares/standup-tickets/internal/handler"
	"github.com/sovarares/standup-tickets/internal/middleware"
	"github.com/sovarares/standup-tickets/internal/session"
)

// Handlers collects everything the router needs. All fields are required.
type Handlers struct {
	Auth      *handler.AuthHandler
	Shows     *handler.ShowHandler
	Tickets   *handler.TicketHandler
	Report    *handler.ReportHandler
	Artists   *handler.ArtistHandler
	Venues    *handler.VenueHandler
	Organizer *handler.OrganizerHandler
}

// Register wires every route. The index, login, register and health
// endpoints are public; everything else sits behind the session
// middleware, which redirects anonymous visitors to the index page. The
// rate limiter only guards the credential endpoints.
func Register(e *echo.Echo, h Handlers, sessionSecret string, store session.Store, limiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	e.GET("/", h.Auth.Index)
	e.POST("/login", h.Auth.Login, limiter)
	e.POST("/register", h.Auth.Register, limiter)
	e.GET("/logout", h.Auth.Logout)

	auth := e.Group("", middleware.RequireSession(sessionSecret, store))

	auth.GET("/spectacole", h.Shows.List)
	auth.POST("/spectacol/add", h.Shows.Add)
	auth.POST("/spectacol/edit", h.Shows.Edit)
	auth.POST("/spectacol/delete", h.Shows.Delete)

	auth.POST("/bilet/buy", h.Tickets.Buy)
	auth.GET("/bilete", h.Tickets.List)

	auth.GET("/raport", h.Report.Report)

	auth.GET("/artisti", h.Artists.List)
	auth.POST("/artist/add", h.Artists.Add)
	auth.POST("/artist/edit", h.Artists.Edit)
	auth.POST("/artist/delete", h.Artists.Delete)

	auth.GET("/locatii", h.Venues.List)
	auth.POST("/locatie/add", h.Venues.Add)
	auth.POST("/locatie/edit", h.Venues.Edit)
	auth.POST("/locatie/delete", h.Venues.Delete)

	auth.GET("/organizatori", h.Organizer.List)
	auth.POST("/organizator/add", h.Organizer.Add)
	auth.POST("/organizator/edit", h.Organizer.Edit)
	auth.POST("/organizator/delete", h.Organizer.Delete)
}
