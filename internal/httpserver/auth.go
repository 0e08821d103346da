package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/logging"
	mwauth "github.com/techclub/club-portal/internal/middleware/auth"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Register(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, transport.AuthResponse{Token: token, User: user})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Login(ctx, req.Ident(), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{Token: token, User: user})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Profile(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	id, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	var upd transport.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.change_password")

	id, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ChangePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

func sessionAccountID(c echo.Context) (uuid.UUID, error) {
	claims, ok := mwauth.SessionFromContext(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	id, err := claims.AccountID()
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
	}
	return id, nil
}
