// Package identity authenticates shoppers and reports the authentication
// state the client navigates on.
package identity

import (
	"errors"

	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

type Status string

const (
	Unauthenticated Status = "unauthenticated"
	Authenticated   Status = "authenticated"
	Failed          Status = "error"
)

type State struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Session struct {
	UserID uint
	Email  string
	tokens.Pair
}

// StateOf maps the result of SignUp, Login or Refresh to a State. Internal
// errors are not echoed to the client.
func StateOf(s *Session, err error) State {
	switch {
	case err == nil && s != nil:
		return State{Status: Authenticated}
	case err == nil:
		return State{Status: Unauthenticated}
	case errors.Is(err, ErrInvalidCredentials):
		return State{Status: Failed, Message: "invalid email or password"}
	case errors.Is(err, ErrUserExists):
		return State{Status: Failed, Message: "user already exists"}
	case errors.Is(err, ErrValidation):
		return State{Status: Failed, Message: validationMessage(err)}
	case errors.Is(err, ErrInvalidRefreshToken):
		return State{Status: Unauthenticated, Message: "session expired"}
	}
	return State{Status: Failed, Message: "authentication failed"}
}

func validationMessage(err error) string {
	var ve *validationError
	if errors.As(err, &ve) {
		return ve.msg
	}
	return "invalid input"
}
