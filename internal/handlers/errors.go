package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"

	"github.com/Skotchmaster/coffee_shop/internal/service"
)

// fail logs the failure under event and converts it to an HTTP error.
// Internal errors are not echoed to the client.
func fail(l *slog.Logger, event string, err error) error {
	code, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, service.ErrValidation):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrProductNotFound):
		code, msg = http.StatusNotFound, "product not found"
	case errors.Is(err, service.ErrNotFound):
		code, msg = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrEmptyCart):
		code, msg = http.StatusConflict, "cart is empty"
	case errors.Is(err, service.ErrConflict):
		code, msg = http.StatusConflict, "conflict"
	}

	if code >= 500 {
		l.Error(event, "status", code, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg)
}

func userID(c echo.Context, l *slog.Logger, event string) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		l.Warn(event, "status", 401, "reason", "no user in context")
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func productIDParam(c echo.Context, l *slog.Logger, event string) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn(event, "status", 400, "reason", "invalid product id", "error", err)
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}
