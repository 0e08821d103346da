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

type EventHTTP struct {
	Svc     *service.EventService
	Uploads *upload.Store
}

func (h *EventHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := repo.EventFilter{
		Category:   c.QueryParam("category"),
		Status:     c.QueryParam("status"),
		Upcoming:   c.QueryParam("upcoming") == "true",
		PublicOnly: c.QueryParam("public") != "false",
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

func (h *EventHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_failed", "status", 400, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	e, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EventHTTP) ListUpcoming(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 5)
	items, err := h.Svc.ListUpcoming(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EventHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.create")

	p, err := h.bindEvent(c)
	if err != nil {
		l.Warn("create_failed", "status", 400, "error", err)
		return err
	}

	e, err := h.Svc.Create(ctx, *p)
	if err != nil {
		return err
	}
	l.Info("create_success", "id", e.ID)
	return c.JSON(http.StatusCreated, e)
}

func (h *EventHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.bindEvent(c)
	if err != nil {
		l.Warn("update_failed", "status", 400, "error", err)
		return err
	}

	e, err := h.Svc.Update(ctx, id, *p)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EventHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return err
	}
	l.Info("delete_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}

// bindEvent accepts either a plain JSON body or a multipart form carrying an
// optional "image" file next to the scalar fields.
func (h *EventHTTP) bindEvent(c echo.Context) (*transport.EventPayload, error) {
	if !isMultipart(c) {
		var p transport.EventPayload
		if err := c.Bind(&p); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return &p, nil
	}

	fr, err := newFormReader(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	p := transport.EventPayload{
		Title:                fr.str("title"),
		Description:          fr.str("description"),
		Date:                 fr.timeField("date"),
		Time:                 fr.str("time"),
		Location:             fr.str("location"),
		Category:             fr.str("category"),
		Organizer:            fr.str("organizer"),
		MaxParticipants:      fr.intField("maxParticipants"),
		CurrentParticipants:  fr.intField("currentParticipants"),
		RegistrationRequired: fr.boolField("registrationRequired"),
		RegistrationDeadline: fr.timeField("registrationDeadline"),
		Status:               fr.str("status"),
		IsPublic:             fr.boolField("isPublic"),
		Requirements:         fr.str("requirements"),
		ContactEmail:         fr.str("contactEmail"),
	}
	var tags models.StringList
	if fr.jsonInto("tags", &tags) {
		p.Tags = &tags
	}

	if fh := fr.file("image"); fh != nil {
		att, err := h.Uploads.Save(fh, "events", "event")
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
