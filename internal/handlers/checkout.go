package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) PaymentMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, service.PaymentMethods)
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_order")

	uid, err := userID(c, l, "checkout_error")
	if err != nil {
		return err
	}
	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, uid, req.PaymentMethod)
	if err != nil {
		return fail(l, "checkout_error", err)
	}
	l.Info("checkout_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, transport.FromOrder(*order))
}

func (h *CheckoutHTTP) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.list_orders")

	uid, err := userID(c, l, "list_orders_error")
	if err != nil {
		return err
	}
	page, size := util.ParsePage(c.QueryParam("page"), c.QueryParam("size"))

	orders, total, err := h.Svc.ListOrders(ctx, uid, page, size)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	items := make([]transport.Order, 0, len(orders))
	for _, o := range orders {
		items = append(items, transport.FromOrder(o))
	}
	return c.JSON(http.StatusOK, transport.OrderList{Items: items, Total: total, Page: page, Size: size})
}
