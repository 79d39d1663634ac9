package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c, l, "get_cart_error")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.FromCart(h.Svc.Get(ctx, uid)))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	uid, err := userID(c, l, "add_item_error")
	if err != nil {
		return err
	}
	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.Add(ctx, uid, req.ProductID)
	if err != nil {
		return fail(l, "add_item_error", err)
	}
	l.Info("add_item_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, transport.FromCart(view))
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	uid, err := userID(c, l, "set_quantity_error")
	if err != nil {
		return err
	}
	pid, err := productIDParam(c, l, "set_quantity_error")
	if err != nil {
		return err
	}
	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity required")
	}

	view, err := h.Svc.SetQuantity(ctx, uid, pid, *req.Quantity)
	if err != nil {
		return fail(l, "set_quantity_error", err)
	}
	return c.JSON(http.StatusOK, transport.FromCart(view))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	uid, err := userID(c, l, "remove_item_error")
	if err != nil {
		return err
	}
	pid, err := productIDParam(c, l, "remove_item_error")
	if err != nil {
		return err
	}

	view, err := h.Svc.Remove(ctx, uid, pid)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}
	return c.JSON(http.StatusOK, transport.FromCart(view))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	uid, err := userID(c, l, "clear_cart_error")
	if err != nil {
		return err
	}
	l.Info("clear_cart_success")
	return c.JSON(http.StatusOK, transport.FromCart(h.Svc.Clear(ctx, uid)))
}
