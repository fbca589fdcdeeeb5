package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation marks a unique, check or foreign-key failure raised by the store.
	ErrConstraintViolation = errors.New("constraint violation")
)

// ValidationError is a caller-supplied value outside its allowed range or enum.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// lookupError turns a failed First() into a NotFound naming the entity.
func lookupError(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return classifyError(err)
}

var constraintMarkers = []string{
	"constraint failed",      // sqlite
	"violates",               // postgres
	"duplicate entry",        // mysql 1062
	"foreign key constraint", // mysql 1451/1452
	"check constraint",       // mysql 3819
}

// classifyError maps store errors onto the service taxonomy, keeping the
// original error in the chain.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var vErr ValidationError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraintViolation) || errors.As(err, &vErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range constraintMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
	}
	return err
}
