package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/tokens"
)

const sessionKey = "session"

// RequireAuth verifies the Bearer session token. Verification is pure: the
// token carries account id and role, and no store is consulted, so any
// instance can authenticate any request.
func RequireAuth(issuer *tokens.Issuer) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  sessionKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return issuer.Parse(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
		},
	})
}

func SessionFromContext(c echo.Context) (*tokens.SessionClaims, bool) {
	claims, ok := c.Get(sessionKey).(*tokens.SessionClaims)
	return claims, ok
}
