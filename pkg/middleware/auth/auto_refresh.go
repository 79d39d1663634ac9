package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

type Refresher interface {
	RefreshPair(ctx context.Context, refreshToken string) (tokens.Pair, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret []byte
	Refresher Refresher
}

func NewAutoRefreshMiddleware(secret []byte, refresher Refresher) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{JWTSecret: secret, Refresher: refresher}
}

// accessToken returns the Bearer token when an Authorization header is
// present, without falling back to the cookie.
func accessToken(c echo.Context) (token string, bearer bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if v, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(v), true
	}
	if ck, err := c.Cookie(tokens.AccessCookie); err == nil {
		return ck.Value, false
	}
	return "", false
}

// RequireAuth accepts the access token from a Bearer header or, without
// one, from the accessToken cookie. An expired cookie token is replaced
// transparently when a valid refreshToken cookie is present; Bearer clients
// refresh explicitly.
func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, bearer := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err == nil {
			if err := setUserContext(c, claims); err != nil {
				return err
			}
			return next(c)
		}
		if bearer {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if !errors.Is(err, jwt.ErrTokenExpired) || m.Refresher == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refreshCookie, rErr := c.Cookie(tokens.RefreshCookie)
		if rErr != nil || refreshCookie.Value == "" {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		pair, refErr := m.Refresher.RefreshPair(c.Request().Context(), refreshCookie.Value)
		if errors.Is(refErr, tokens.ErrRotationConflict) {
			// a parallel request already rotated this token and set fresh cookies
			return echo.NewHTTPError(http.StatusUnauthorized, "session refreshed concurrently, retry")
		}
		if refErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}

		c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, pair.AccessToken, "/", pair.AccessExp))
		c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, pair.RefreshToken, "/", pair.RefreshExp))

		newClaims, pErr := tokens.AccessClaimsFromToken(pair.AccessToken, m.JWTSecret)
		if pErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}
		if err := setUserContext(c, newClaims); err != nil {
			return err
		}
		return next(c)
	}
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) error {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject")
	}
	c.Set(ctxUserID, uint(id))
	c.Set(ctxEmail, claims.Email)
	return nil
}

// UserID returns the id placed by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	return id, ok && id != 0
}
