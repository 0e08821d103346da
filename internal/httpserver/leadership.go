package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/logging"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/transport"
	"github.com/techclub/club-portal/internal/upload"
	"github.com/techclub/club-portal/internal/util"
)

type LeadershipHTTP struct {
	Svc     *service.LeadershipService
	Uploads *upload.Store
}

func (h *LeadershipHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := repo.LeaderFilter{
		Position:   c.QueryParam("position"),
		Department: c.QueryParam("department"),
		ActiveOnly: c.QueryParam("active") != "false",
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse(items, page, limit, total))
}

func (h *LeadershipHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leadership.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_failed", "status", 400, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	lead, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Leader not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadershipHTTP) ListByPosition(c echo.Context) error {
	items, err := h.Svc.ListByPosition(c.Request().Context(), c.Param("position"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListMain returns the core positions shown on the landing page.
func (h *LeadershipHTTP) ListMain(c echo.Context) error {
	items, err := h.Svc.ListMain(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *LeadershipHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leadership.create")

	p, err := h.bindLeader(c)
	if err != nil {
		l.Warn("create_failed", "status", 400, "error", err)
		return err
	}

	lead, err := h.Svc.Create(ctx, *p)
	if err != nil {
		return err
	}
	l.Info("create_success", "id", lead.ID)
	return c.JSON(http.StatusCreated, lead)
}

func (h *LeadershipHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leadership.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.bindLeader(c)
	if err != nil {
		l.Warn("update_failed", "status", 400, "error", err)
		return err
	}

	lead, err := h.Svc.Update(ctx, id, *p)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Leader not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadershipHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leadership.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Leader not found")
		}
		return err
	}
	l.Info("delete_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Leader deleted successfully"})
}

func (h *LeadershipHTTP) bindLeader(c echo.Context) (*transport.LeaderPayload, error) {
	if !isMultipart(c) {
		var p transport.LeaderPayload
		if err := c.Bind(&p); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return &p, nil
	}

	fr, err := newFormReader(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	p := transport.LeaderPayload{
		Name:           fr.str("name"),
		Position:       fr.str("position"),
		Department:     fr.str("department"),
		Email:          fr.str("email"),
		Phone:          fr.str("phone"),
		Bio:            fr.str("bio"),
		JoinDate:       fr.timeField("joinDate"),
		IsActive:       fr.boolField("isActive"),
		DisplayOrder:   fr.intField("displayOrder"),
		OfficeHours:    fr.str("officeHours"),
		OfficeLocation: fr.str("officeLocation"),
	}
	var social models.SocialLinks
	if fr.jsonInto("socialLinks", &social) {
		p.SocialLinks = &social
	}
	var achievements models.LeaderAchievementList
	if fr.jsonInto("achievements", &achievements) {
		p.Achievements = &achievements
	}
	var education models.EducationList
	if fr.jsonInto("education", &education) {
		p.Education = &education
	}
	var expertise models.StringList
	if fr.jsonInto("expertise", &expertise) {
		p.Expertise = &expertise
	}

	if fh := fr.file("image"); fh != nil {
		att, err := h.Uploads.Save(fh, "leadership", "leader")
		if err != nil {
			return nil, err
		}
		p.Image = &models.Image{Filename: att.Filename, Path: att.Path}
	}

	if err := fr.err(); err != nil {
		return nil, err
	}
	return &p, nil
}
