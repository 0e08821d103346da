package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/techclub/club-portal/internal/middleware/auth"
	loggingmw "github.com/techclub/club-portal/internal/middleware/logging"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/tokens"
)

// Handlers collects the HTTP surface so the router stays a pure wiring table.
type Handlers struct {
	Auth          *AuthHTTP
	Announcements *AnnouncementHTTP
	Events        *EventHTTP
	Activities    *ActivityHTTP
	Leadership    *LeadershipHTTP
}

func NewRouter(logger *slog.Logger, issuer *tokens.Issuer, uploadDir string, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(loggingmw.RequestLogger(logger))

	e.Static("/uploads", uploadDir)

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "College Club API is running!"})
	})

	authed := mwauth.RequireAuth(issuer)
	adminOnly := mwauth.RequireRole(models.RoleAdmin)

	ag := api.Group("/auth")
	ag.POST("/register", h.Auth.Register)
	ag.POST("/login", h.Auth.Login)
	ag.GET("/profile", h.Auth.Profile, authed)
	ag.PUT("/profile", h.Auth.UpdateProfile, authed)
	ag.POST("/change-password", h.Auth.ChangePassword, authed)

	an := api.Group("/announcements")
	an.GET("", h.Announcements.List)
	an.GET("/search", h.Announcements.Search)
	an.GET("/category/:category", h.Announcements.ListByCategory)
	an.GET("/:id", h.Announcements.Get)
	an.POST("", h.Announcements.Create, authed, adminOnly)
	an.PUT("/:id", h.Announcements.Update, authed, adminOnly)
	an.DELETE("/:id", h.Announcements.Delete, authed, adminOnly)

	ev := api.Group("/events")
	ev.GET("", h.Events.List)
	ev.GET("/filter/upcoming", h.Events.ListUpcoming)
	ev.GET("/:id", h.Events.Get)
	ev.POST("", h.Events.Create, authed, adminOnly)
	ev.PUT("/:id", h.Events.Update, authed, adminOnly)
	ev.DELETE("/:id", h.Events.Delete, authed, adminOnly)

	ac := api.Group("/activities")
	ac.GET("", h.Activities.List)
	ac.GET("/filter/highlighted", h.Activities.ListHighlighted)
	ac.GET("/:id", h.Activities.Get)
	ac.POST("", h.Activities.Create, authed, adminOnly)
	ac.PUT("/:id", h.Activities.Update, authed, adminOnly)
	ac.DELETE("/:id", h.Activities.Delete, authed, adminOnly)

	le := api.Group("/leadership")
	le.GET("", h.Leadership.List)
	le.GET("/filter/main", h.Leadership.ListMain)
	le.GET("/position/:position", h.Leadership.ListByPosition)
	le.GET("/:id", h.Leadership.Get)
	le.POST("", h.Leadership.Create, authed, adminOnly)
	le.PUT("/:id", h.Leadership.Update, authed, adminOnly)
	le.DELETE("/:id", h.Leadership.Delete, authed, adminOnly)

	return e
}
