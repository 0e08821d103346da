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

// maxActivityImages caps a single upload batch, not the stored gallery.
const maxActivityImages = 5

type ActivityHTTP struct {
	Svc     *service.ActivityService
	Uploads *upload.Store
}

func (h *ActivityHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := repo.ActivityFilter{
		Type:        c.QueryParam("type"),
		Status:      c.QueryParam("status"),
		Highlighted: c.QueryParam("highlighted") == "true",
		PublicOnly:  c.QueryParam("public") != "false",
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

func (h *ActivityHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_failed", "status", 400, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	a, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ActivityHTTP) ListHighlighted(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 6)
	items, err := h.Svc.ListHighlighted(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ActivityHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.create")

	p, err := h.bindActivity(c)
	if err != nil {
		l.Warn("create_failed", "status", 400, "error", err)
		return err
	}

	a, err := h.Svc.Create(ctx, *p)
	if err != nil {
		return err
	}
	l.Info("create_success", "id", a.ID)
	return c.JSON(http.StatusCreated, a)
}

func (h *ActivityHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.bindActivity(c)
	if err != nil {
		l.Warn("update_failed", "status", 400, "error", err)
		return err
	}

	a, err := h.Svc.Update(ctx, id, *p)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ActivityHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return err
	}
	l.Info("delete_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Activity deleted successfully"})
}

// bindActivity accepts either JSON or a multipart form with up to five
// "images" files. Uploaded files append to the gallery; the "images" JSON
// field, when present, replaces it.
func (h *ActivityHTTP) bindActivity(c echo.Context) (*transport.ActivityPayload, error) {
	if !isMultipart(c) {
		var p transport.ActivityPayload
		if err := c.Bind(&p); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return &p, nil
	}

	fr, err := newFormReader(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	p := transport.ActivityPayload{
		Title:         fr.str("title"),
		Description:   fr.str("description"),
		Type:          fr.str("type"),
		Status:        fr.str("status"),
		StartDate:     fr.timeField("startDate"),
		EndDate:       fr.timeField("endDate"),
		Leader:        fr.str("leader"),
		IsHighlighted: fr.boolField("isHighlighted"),
		Visibility:    fr.str("visibility"),
	}
	var participants models.ParticipantList
	if fr.jsonInto("participants", &participants) {
		p.Participants = &participants
	}
	var gallery models.ImageList
	if fr.jsonInto("images", &gallery) {
		p.Images = &gallery
	}
	var achievements models.ActivityAchievementList
	if fr.jsonInto("achievements", &achievements) {
		p.Achievements = &achievements
	}
	var skills models.StringList
	if fr.jsonInto("skills", &skills) {
		p.Skills = &skills
	}
	var technologies models.StringList
	if fr.jsonInto("technologies", &technologies) {
		p.Technologies = &technologies
	}
	var tags models.StringList
	if fr.jsonInto("tags", &tags) {
		p.Tags = &tags
	}

	for _, fh := range fr.fileList("images", maxActivityImages) {
		att, err := h.Uploads.Save(fh, "activities", "activity")
		if err != nil {
			return nil, err
		}
		p.NewImages = append(p.NewImages, models.Image{Filename: att.Filename, Path: att.Path})
	}

	if err := fr.err(); err != nil {
		return nil, err
	}
	return &p, nil
}
