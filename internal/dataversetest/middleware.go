package dataversetest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/dataverse/internal/auth"
)

// Authorize rejects requests without valid bearer token
func Authorize(validator *auth.JwtValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.BearerToken(c.Request().Header.Get("Authorization"))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			if _, err := validator.Verify(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			return next(c)
		}
	}
}
