package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/service"
)

var tiers = map[string]int{
	models.RoleMember:    1,
	models.RoleModerator: 2,
	models.RoleAdmin:     3,
}

func Tier(role string) int {
	return tiers[role]
}

// Authorize is the single role check every guarded route goes through:
// member < moderator < admin. An unknown role has tier zero and fails
// everything.
func Authorize(required, actual string) error {
	if Tier(actual) < Tier(required) {
		return service.ErrForbidden
	}
	return nil
}

func RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := SessionFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}
			if err := Authorize(required, claims.Role); err != nil {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("Access denied. %s role required.", capitalize(required)))
			}
			return next(c)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
