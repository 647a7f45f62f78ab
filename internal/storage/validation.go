package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khata-app/khata/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
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

// validateProto checks an imported record before it is committed.
func validateProto(proto *model.ProtoExpense) error {
	if proto.Amount <= 0 {
		return fmt.Errorf("%w: %.2f", model.ErrInvalidAmount, proto.Amount)
	}
	if proto.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}
