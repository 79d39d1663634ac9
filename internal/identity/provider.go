package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/hash"
	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

const MinSecretLen = 6

var (
	ErrValidation          = errors.New("validation")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &validationError{msg: msg} }

type Provider interface {
	SignUp(ctx context.Context, identifier, secret string) (*Session, error)
	Login(ctx context.Context, identifier, secret string) (*Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

type LocalProvider struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

var _ Provider = (*LocalProvider)(nil)

func normalize(identifier, secret string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(identifier))
	if email == "" {
		return "", invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email is not valid")
	}
	if len(secret) < MinSecretLen {
		return "", invalid(fmt.Sprintf("password must be at least %d characters", MinSecretLen))
	}
	return email, nil
}

func (p *LocalProvider) SignUp(ctx context.Context, identifier, secret string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "identity.signup")

	email, err := normalize(identifier, secret)
	if err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(secret)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: pwHash}
	if err := p.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("signup_error", "status", 409, "reason", "user already exist")
			return nil, ErrUserExists
		}
		l.Error("signup_error", "status", 500, "error", err)
		return nil, err
	}

	return p.issue(ctx, user)
}

func (p *LocalProvider) Login(ctx context.Context, identifier, secret string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "identity.login")

	email := strings.ToLower(strings.TrimSpace(identifier))
	if email == "" || secret == "" {
		return nil, invalid("email and password are required")
	}

	user, err := p.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, secret) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	return p.issue(ctx, user)
}

func (p *LocalProvider) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return p.Repo.RevokeRefreshToken(ctx, tokens.Sha256Hex(refreshToken))
}

func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "identity.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, p.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidRefreshToken)
	}

	user, err := p.Repo.GetUserByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidRefreshToken)
		}
		return nil, err
	}

	sess, next, err := p.newSession(user)
	if err != nil {
		return nil, err
	}
	if err := p.Repo.RotateRefreshToken(ctx, claims.ID, tokens.Sha256Hex(refreshToken), next); err != nil {
		if errors.Is(err, repo.ErrTokenRevoked) || errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 401, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		return nil, err
	}
	return sess, nil
}

// RefreshPair lets the auth middleware refresh an expired access token.
func (p *LocalProvider) RefreshPair(ctx context.Context, refreshToken string) (tokens.Pair, error) {
	s, err := p.Refresh(ctx, refreshToken)
	if err != nil {
		return tokens.Pair{}, err
	}
	return s.Pair, nil
}

func (p *LocalProvider) issue(ctx context.Context, user *models.User) (*Session, error) {
	sess, stored, err := p.newSession(user)
	if err != nil {
		return nil, err
	}
	if err := p.Repo.AddRefreshToken(ctx, stored); err != nil {
		return nil, err
	}
	return sess, nil
}

func (p *LocalProvider) newSession(user *models.User) (*Session, *models.RefreshToken, error) {
	now := time.Now()
	sub := strconv.FormatUint(uint64(user.ID), 10)

	accessExp := now.Add(p.AccessTTL)
	access, err := tokens.IssueAccess(p.AccessSecret, sub, user.Email, accessExp)
	if err != nil {
		return nil, nil, err
	}

	refreshExp := now.Add(p.RefreshTTL)
	refresh, jti, err := tokens.IssueRefresh(p.RefreshSecret, sub, refreshExp)
	if err != nil {
		return nil, nil, err
	}

	sess := &Session{
		UserID: user.ID,
		Email:  user.Email,
		Pair: tokens.Pair{
			AccessToken:  access,
			RefreshToken: refresh,
			AccessExp:    accessExp,
			RefreshExp:   refreshExp,
		},
	}
	stored := &models.RefreshToken{
		TokenHash: tokens.Sha256Hex(refresh),
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: refreshExp,
	}
	return sess, stored, nil
}
