// Package apperr defines the error taxonomy shared by the habit and group
// services. Handlers inspect errors with errors.Is and translate kinds to
// HTTP statuses; services wrap the underlying cause so nothing is swallowed.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: habit, group, code, or invite does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyMember: join attempted by an existing member.
	ErrAlreadyMember = errors.New("already a member")
	// ErrDuplicateCode: group code collision that survived retries.
	ErrDuplicateCode = errors.New("duplicate group code")
	// ErrUnauthorized: non-creator attempting a creator-only action.
	ErrUnauthorized = errors.New("not authorized")
	// ErrCreatorCannotLeave: the creator must delete the group, not leave it.
	ErrCreatorCannotLeave = errors.New("creator cannot leave group")
	// ErrValidation: malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrPersistence: opaque storage failure.
	ErrPersistence = errors.New("persistence failure")
)

// NotFound wraps ErrNotFound with a subject, e.g. "group ABC123".
func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// Validation wraps ErrValidation with a human-readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}

// Persistence wraps a storage error so callers can match the kind while the
// cause stays in the chain.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
