package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/identity"
	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AccountService
}

// stateCode picks the HTTP status for an authentication result. The body is
// always the identity.State so the client can navigate on it.
func stateCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, identity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func setSessionCookies(c echo.Context, s *identity.Session) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, s.AccessToken, "/", s.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, s.RefreshToken, "/", s.RefreshExp))
}

func clearSessionCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
}

func (h *AuthHTTP) respond(c echo.Context, event string, s *identity.Session, err error) error {
	l := logging.FromContext(c.Request().Context())
	state := identity.StateOf(s, err)
	code := stateCode(err)

	if err != nil {
		if code >= 500 {
			l.Error(event+"_error", "status", code, "error", err)
		} else {
			l.Warn(event+"_failed", "status", code, "reason", state.Message, "error", err)
		}
		if errors.Is(err, identity.ErrInvalidRefreshToken) && !errors.Is(err, tokens.ErrRotationConflict) {
			clearSessionCookies(c)
		}
		return c.JSON(code, transport.AuthResponse{State: state})
	}

	setSessionCookies(c, s)
	l.Info(event+"_successful", "user_id", s.UserID)
	return c.JSON(code, transport.AuthResponse{State: state, UserID: s.UserID, Email: s.Email})
}

func (h *AuthHTTP) bind(c echo.Context, event string) (transport.AuthRequest, bool) {
	var req transport.AuthRequest
	if err := c.Bind(&req); err != nil {
		logging.FromContext(c.Request().Context()).Warn(event+"_error", "status", 400, "reason", "invalid body", "error", err)
		return req, false
	}
	return req, true
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	req, ok := h.bind(c, "signup")
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	s, err := h.Svc.SignUp(c.Request().Context(), req.Email, req.Password)
	return h.respond(c, "signup", s, err)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	req, ok := h.bind(c, "login")
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	s, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	return h.respond(c, "login", s, err)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	rt := ""
	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		rt = ck.Value
	}
	if rt == "" {
		clearSessionCookies(c)
		return c.JSON(http.StatusUnauthorized, transport.AuthResponse{State: identity.StateOf(nil, identity.ErrInvalidRefreshToken)})
	}
	s, err := h.Svc.Refresh(c.Request().Context(), rt)
	return h.respond(c, "refresh", s, err)
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil && strings.TrimSpace(ck.Value) != "" {
		if err := h.Svc.SignOut(ctx, ck.Value); err != nil {
			clearSessionCookies(c)
			l.Error("logout_failed", "status", 500, "reason", "cannot revoke refreshToken", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
		}
	}
	clearSessionCookies(c)

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, transport.AuthResponse{State: identity.StateOf(nil, nil)})
}
