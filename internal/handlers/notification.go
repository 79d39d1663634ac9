package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
	Now func() time.Time
}

func (h *NotificationHTTP) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *NotificationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.list")

	uid, err := userID(c, l, "list_notifications_error")
	if err != nil {
		return err
	}
	page, size := util.ParsePage(c.QueryParam("page"), c.QueryParam("size"))

	res, err := h.Svc.List(ctx, uid, page, size)
	if err != nil {
		return fail(l, "list_notifications_error", err)
	}
	return c.JSON(http.StatusOK, transport.FromNotifications(res, h.now()))
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.mark_read")

	uid, err := userID(c, l, "mark_read_error")
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("mark_read_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}

	if err := h.Svc.MarkRead(ctx, uid, uint(id)); err != nil {
		return fail(l, "mark_read_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHTTP) MarkAllRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.mark_all_read")

	uid, err := userID(c, l, "mark_all_read_error")
	if err != nil {
		return err
	}
	n, err := h.Svc.MarkAllRead(ctx, uid)
	if err != nil {
		return fail(l, "mark_all_read_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}
