package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Skotchmaster/coffee_shop/internal/repo"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldImageURI = "image_uri"

	maxFieldLen = 512
)

var ProfileFields = []string{FieldName, FieldEmail, FieldPhone, FieldImageURI}

type ProfileService struct {
	Repo *repo.GormRepo
}

func knownField(name string) bool {
	for _, f := range ProfileFields {
		if f == name {
			return true
		}
	}
	return false
}

func validateField(field, value string) error {
	if !knownField(field) {
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	if len(value) > maxFieldLen {
		return fmt.Errorf("%s is too long: %w", field, ErrValidation)
	}
	if field == FieldEmail && value != "" {
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Errorf("email is not valid: %w", ErrValidation)
		}
	}
	return nil
}

// Get returns every known field; unset fields are empty strings.
func (s *ProfileService) Get(ctx context.Context, userID uint) (map[string]string, error) {
	stored, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ProfileFields))
	for _, f := range ProfileFields {
		out[f] = stored[f]
	}
	return out, nil
}

func (s *ProfileService) Set(ctx context.Context, userID uint, field, value string) error {
	return s.Update(ctx, userID, map[string]string{field: value})
}

// Update validates the whole patch before writing any of it.
func (s *ProfileService) Update(ctx context.Context, userID uint, patch map[string]string) error {
	clean := make(map[string]string, len(patch))
	for k, v := range patch {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if err := validateField(k, v); err != nil {
			return err
		}
		clean[k] = v
	}
	return s.Repo.UpsertProfileFields(ctx, userID, clean)
}
