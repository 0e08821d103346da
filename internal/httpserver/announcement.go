package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/logging"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/transport"
	"github.com/techclub/club-portal/internal/util"
)

type AnnouncementHTTP struct {
	Svc *service.AnnouncementService
}

func (h *AnnouncementHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := repo.AnnouncementFilter{
		Category:   c.QueryParam("category"),
		Priority:   c.QueryParam("priority"),
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

func (h *AnnouncementHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "announcement.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_failed", "status", 400, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	a, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Announcement not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHTTP) ListByCategory(c echo.Context) error {
	items, err := h.Svc.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AnnouncementHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchText(ctx, query, offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse(items, page, limit, total))
}

func (h *AnnouncementHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "announcement.create")

	var p transport.AnnouncementPayload
	if err := c.Bind(&p); err != nil {
		l.Warn("create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	a, err := h.Svc.Create(ctx, p)
	if err != nil {
		return err
	}
	l.Info("create_success", "id", a.ID)
	return c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "announcement.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var p transport.AnnouncementPayload
	if err := c.Bind(&p); err != nil {
		l.Warn("update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	a, err := h.Svc.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Announcement not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "announcement.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Announcement not found")
		}
		return err
	}
	l.Info("delete_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Announcement deleted successfully"})
}
