package service

import (
	"context"

	"github.com/Skotchmaster/coffee_shop/internal/identity"
	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

// AccountService wraps an identity.Provider with the onboarding a new account
// gets: welcome notifications, the profile e-mail and a user_registered event.
type AccountService struct {
	Identity      identity.Provider
	Notifications *NotificationService
	Profiles      *ProfileService
	Events        mykafka.Publisher
}

func (s *AccountService) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	l := logging.FromContext(ctx).With("svc", "account.signup")

	sess, err := s.Identity.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// The account exists at this point; onboarding failures are logged only.
	if s.Notifications != nil {
		if err := s.Notifications.Welcome(ctx, sess.UserID); err != nil {
			l.Error("welcome_notifications_error", "user_id", sess.UserID, "error", err)
		}
	}
	if s.Profiles != nil {
		if err := s.Profiles.Set(ctx, sess.UserID, FieldEmail, sess.Email); err != nil {
			l.Error("profile_seed_error", "user_id", sess.UserID, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicUserEvents, sess.UserID, map[string]any{
		"type":  "user_registered",
		"email": sess.Email,
	})
	return sess, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	sess, err := s.Identity.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, mykafka.TopicUserEvents, sess.UserID, map[string]any{"type": "user_logged_in"})
	return sess, nil
}

func (s *AccountService) SignOut(ctx context.Context, refreshToken string) error {
	return s.Identity.SignOut(ctx, refreshToken)
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*identity.Session, error) {
	return s.Identity.Refresh(ctx, refreshToken)
}
