// Package httperr maps store and validation errors onto API status codes.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/store"
)

// From maps a domain error onto the status the API reports for it.
func From(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, records.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// Bind passes a c.Bind failure through. Errors that already carry a status,
// such as a 413 from the body limit, keep it; anything else is a 400.
func Bind(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
