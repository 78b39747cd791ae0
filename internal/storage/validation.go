// Package storage provides the data persistence layer for jobflow.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrEmptySlice            = errors.New("slice cannot be empty")
	ErrInvalidDateRange      = errors.New("start date must be before end date")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrNotFound              = errors.New("not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEmails validates a slice of emails.
func validateEmails(emails []model.Email) error {
	if emails == nil {
		return fmt.Errorf("%w: emails", ErrNilParameter)
	}
	if len(emails) == 0 {
		return fmt.Errorf("%w: emails", ErrEmptySlice)
	}

	for i := range emails {
		if err := validateEmail(&emails[i]); err != nil {
			return fmt.Errorf("email at index %d: %w", i, err)
		}
	}
	return nil
}

// validateEmail validates a single email.
func validateEmail(email *model.Email) error {
	if email == nil {
		return fmt.Errorf("%w: email", ErrNilParameter)
	}
	if email.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidEmail)
	}
	return nil
}

// validateClassification validates a classification.
func validateClassification(c *model.Classification) error {
	if c == nil {
		return fmt.Errorf("%w: classification", ErrNilParameter)
	}
	if c.EmailID == "" {
		return fmt.Errorf("%w: missing email ID", ErrInvalidClassification)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidClassification, c.Status)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidClassification)
	}
	return nil
}
