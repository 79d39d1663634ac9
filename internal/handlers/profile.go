package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	uid, err := userID(c, l, "get_profile_error")
	if err != nil {
		return err
	}
	fields, err := h.Svc.Get(ctx, uid)
	if err != nil {
		return fail(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, fields)
}

func (h *ProfileHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	uid, err := userID(c, l, "update_profile_error")
	if err != nil {
		return err
	}
	var req transport.ProfilePatch
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(ctx, uid, req.Fields()); err != nil {
		return fail(l, "update_profile_error", err)
	}
	fields, err := h.Svc.Get(ctx, uid)
	if err != nil {
		return fail(l, "update_profile_error", err)
	}
	l.Info("update_profile_success")
	return c.JSON(http.StatusOK, fields)
}
