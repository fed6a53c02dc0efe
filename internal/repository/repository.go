// Package repository is the persistence gateway for profiles and blocks.
// Every block write is scoped by owner.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible to
	// the given owner
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on a unique constraint violation
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingParent is returned when a row references a profile that does
	// not exist
	ErrMissingParent = errors.New("referenced record does not exist")
)

// BatchError reports a best-effort batch where some rows failed to write
type BatchError struct {
	Failed int
	Total  int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d row updates failed: %v", e.Failed, e.Total, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Repository groups the gateways used by the services
type Repository struct {
	Profiles ProfileRepository
	Blocks   BlockRepository
}

// New creates a new Repository backed by db
func New(db *gorm.DB) *Repository {
	return &Repository{
		Profiles: NewProfileRepository(db),
		Blocks:   NewBlockRepository(db),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case isMissingParent(err):
		return fmt.Errorf("%w: %v", ErrMissingParent, err)
	default:
		return err
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isMissingParent(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
