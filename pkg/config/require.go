package config

import (
	"errors"
	"fmt"
)

var ErrMissingEnv = errors.New("missing required env")

func Require(value, envName string) error {
	if value == "" {
		return fmt.Errorf("%w %s", ErrMissingEnv, envName)
	}
	return nil
}

func RequireBytes(value []byte, envName string) error {
	if len(value) == 0 {
		return fmt.Errorf("%w %s", ErrMissingEnv, envName)
	}
	return nil
}
