package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/handlers"
	"github.com/Skotchmaster/coffee_shop/internal/middleware/csrf"
	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

const apiPrefix = "/api/v1"

type Deps struct {
	DB *gorm.DB

	Auth *middleware.AutoRefreshMiddleware
	// CSRF is nil when the check is disabled.
	CSRF *csrf.Config

	AuthHandler         *handlers.AuthHTTP
	CatalogHandler      *handlers.CatalogHTTP
	CartHandler         *handlers.CartHTTP
	FavoritesHandler    *handlers.FavoritesHTTP
	CheckoutHandler     *handlers.CheckoutHTTP
	NotificationHandler *handlers.NotificationHTTP
	ProfileHandler      *handlers.ProfileHTTP
}

// PublicAuthPaths are reachable before the client holds a CSRF cookie.
var PublicAuthPaths = []string{
	apiPrefix + "/auth/signup",
	apiPrefix + "/auth/login",
	apiPrefix + "/auth/refresh",
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	var mw []echo.MiddlewareFunc
	if d.CSRF != nil {
		cfg := *d.CSRF
		cfg.SkipPaths = append(append([]string(nil), cfg.SkipPaths...), PublicAuthPaths...)
		cfg.SessionCookies = append(append([]string(nil), cfg.SessionCookies...), tokens.AccessCookie, tokens.RefreshCookie)
		mw = append(mw, csrf.Middleware(cfg))
	}
	v1 := e.Group(apiPrefix, mw...)

	auth := v1.Group("/auth")
	auth.POST("/signup", d.AuthHandler.SignUp)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)
	auth.POST("/refresh", d.AuthHandler.Refresh)

	catalog := v1.Group("/catalog")
	catalog.GET("/products", d.CatalogHandler.Products)
	catalog.GET("/products/:id", d.CatalogHandler.Product)
	catalog.GET("/featured", d.CatalogHandler.Featured)
	catalog.GET("/categories", d.CatalogHandler.Categories)
	catalog.GET("/offers", d.CatalogHandler.Offers)
	catalog.GET("/search", d.CatalogHandler.SearchProducts)

	requireAuth := d.Auth.RequireAuth

	cart := v1.Group("/cart", requireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("", d.CartHandler.Clear)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PUT("/items/:id", d.CartHandler.SetQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)

	favorites := v1.Group("/favorites", requireAuth)
	favorites.GET("", d.FavoritesHandler.List)
	favorites.POST("", d.FavoritesHandler.Add)
	favorites.DELETE("", d.FavoritesHandler.Clear)
	favorites.DELETE("/:id", d.FavoritesHandler.Remove)
	favorites.POST("/:id/cart", d.FavoritesHandler.AddToCart)

	v1.GET("/payment-methods", d.CheckoutHandler.PaymentMethods, requireAuth)
	v1.POST("/checkout", d.CheckoutHandler.Checkout, requireAuth)
	v1.GET("/orders", d.CheckoutHandler.Orders, requireAuth)

	notifications := v1.Group("/notifications", requireAuth)
	notifications.GET("", d.NotificationHandler.List)
	notifications.POST("/read", d.NotificationHandler.MarkAllRead)
	notifications.POST("/:id/read", d.NotificationHandler.MarkRead)

	v1.GET("/profile", d.ProfileHandler.Get, requireAuth)
	v1.PATCH("/profile", d.ProfileHandler.Update, requireAuth)
}
