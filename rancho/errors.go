/*
errors.go - Centralized error types for the mess-hall domain

PURPOSE:
  All domain error values in one place. Eligibility denials are NOT errors:
  they come back as a Decision with a reason. Errors here are rejected
  preconditions at mutation boundaries (empty block reason, blocking a past
  date) and missing-record lookups.

USAGE:
  Callers classify with errors.Is or the helpers below:

    if rancho.IsValidation(err) {
        // 400 at the API layer
    }

SEE ALSO:
  - blocks.go: Uses the validation errors
  - registration.go: Uses ErrNotPermitted
*/
package rancho

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyReason is returned when a block is created without a reason.
	// A lockout the troops cannot see a motive for breeds helpdesk traffic.
	ErrEmptyReason = errors.New("block reason must not be empty")

	// ErrBlockPastDate is returned when blocking a date that already passed.
	// History is immutable; blocking it is meaningless.
	ErrBlockPastDate = errors.New("cannot block a past date")

	// ErrNotPermitted is returned when a toggle is attempted against a
	// denying decision. Carries a NotPermittedError with the decision.
	ErrNotPermitted = errors.New("registration not permitted")

	// ErrMemberNotFound is returned for lookups of unknown personnel.
	ErrMemberNotFound = errors.New("member not found")

	// ErrRegistrationNotFound is returned when a (member, date) record
	// does not exist and the operation requires one.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrUnknownMeal is returned for meal identifiers other than lunch/dinner.
	ErrUnknownMeal = errors.New("unknown meal")

	// ErrInvalidQuantity is returned for special registrations below one head.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotPermittedError wraps a denying Decision so callers can surface the
// reason without re-running the engine.
type NotPermittedError struct {
	Date     Date
	Decision Decision
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("registration not permitted for %s: %s", e.Date, e.Decision.Reason)
}

func (e *NotPermittedError) Unwrap() error { return ErrNotPermitted }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether the error is a rejected precondition
// (client's fault, not the system's).
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyReason) ||
		errors.Is(err, ErrBlockPastDate) ||
		errors.Is(err, ErrUnknownMeal) ||
		errors.Is(err, ErrInvalidQuantity)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrRegistrationNotFound)
}
