package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

type CatalogHTTP struct {
	Catalog *catalog.Provider
	Search  *service.SearchService
}

func (h *CatalogHTTP) Products(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.products")

	raw := c.QueryParam("temperature")
	if raw == "" {
		return c.JSON(http.StatusOK, transport.FromProducts(h.Catalog.ListAll()))
	}
	t, err := catalog.ParseTemperature(raw)
	if err != nil {
		l.Warn("get_products_error", "status", 400, "reason", "invalid temperature", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "temperature must be hot or cold")
	}
	return c.JSON(http.StatusOK, transport.FromProducts(h.Catalog.Filter(t)))
}

func (h *CatalogHTTP) Product(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.product")

	id, err := productIDParam(c, l, "get_product_error")
	if err != nil {
		return err
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		l.Warn("get_product_error", "status", 404, "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, transport.FromProduct(p))
}

func (h *CatalogHTTP) Featured(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.FromProducts(h.Catalog.ListFeatured()))
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.ListCategories())
}

func (h *CatalogHTTP) Offers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.ListSpecialOffers())
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	page, size := util.ParsePage(c.QueryParam("page"), c.QueryParam("size"))
	res, err := h.Search.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_error", err)
	}

	l.Info("search_success", "total", res.Total)
	return c.JSON(http.StatusOK, transport.SearchResult{
		Items: transport.FromProducts(res.Items),
		Total: res.Total,
		Page:  page,
		Size:  size,
	})
}
