package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type FavoritesHTTP struct {
	Svc *service.FavoritesService
}

func (h *FavoritesHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.list")

	uid, err := userID(c, l, "list_favorites_error")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.FromProducts(h.Svc.List(ctx, uid)))
}

func (h *FavoritesHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.add")

	uid, err := userID(c, l, "add_favorite_error")
	if err != nil {
		return err
	}
	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		l.Warn("add_favorite_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	entries, err := h.Svc.Add(ctx, uid, req.ProductID)
	if err != nil {
		return fail(l, "add_favorite_error", err)
	}
	l.Info("add_favorite_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, transport.FromProducts(entries))
}

func (h *FavoritesHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.remove")

	uid, err := userID(c, l, "remove_favorite_error")
	if err != nil {
		return err
	}
	pid, err := productIDParam(c, l, "remove_favorite_error")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.FromProducts(h.Svc.Remove(ctx, uid, pid)))
}

func (h *FavoritesHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.clear")

	uid, err := userID(c, l, "clear_favorites_error")
	if err != nil {
		return err
	}
	h.Svc.Clear(ctx, uid)
	return c.NoContent(http.StatusNoContent)
}

func (h *FavoritesHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.add_to_cart")

	uid, err := userID(c, l, "favorite_to_cart_error")
	if err != nil {
		return err
	}
	pid, err := productIDParam(c, l, "favorite_to_cart_error")
	if err != nil {
		return err
	}

	view, err := h.Svc.AddToCart(ctx, uid, pid)
	if err != nil {
		return fail(l, "favorite_to_cart_error", err)
	}
	l.Info("favorite_to_cart_success", "product_id", pid)
	return c.JSON(http.StatusOK, transport.FromCart(view))
}
