package common

import (
	"fmt"
	"strings"
)

// Error types for type assertions
type ErrNotFound struct {
	message string
}

func (e *ErrNotFound) Error() string {
	return e.message
}

type ErrUnauthorized struct {
	message string
}

func (e *ErrUnauthorized) Error() string {
	return e.message
}

type ErrForbidden struct {
	message string
}

func (e *ErrForbidden) Error() string {
	return e.message
}

// ErrValidation carries per-field details so handlers can return them verbatim.
type ErrValidation struct {
	message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		return e.message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, detail := range e.Fields {
		parts = append(parts, field+": "+detail)
	}
	return e.message + " (" + strings.Join(parts, "; ") + ")"
}

type ErrConflict struct {
	message string
}

func (e *ErrConflict) Error() string {
	return e.message
}

// ErrConcurrentCalculation signals the activity's rating lock is held by another server.
type ErrConcurrentCalculation struct {
	ActivityID string
	LockedBy   string
}

func (e *ErrConcurrentCalculation) Error() string {
	return fmt.Sprintf("rating calculation for activity %s already in progress (held by %s)", e.ActivityID, e.LockedBy)
}

// ErrConcurrentRatingUpdate signals an optimistic-concurrency conflict that survived all retries.
type ErrConcurrentRatingUpdate struct {
	UserID string
}

func (e *ErrConcurrentRatingUpdate) Error() string {
	return fmt.Sprintf("concurrent rating update for user %s", e.UserID)
}

type ErrInsufficientParticipants struct {
	Required int
	Actual   int
}

func (e *ErrInsufficientParticipants) Error() string {
	return fmt.Sprintf("activity requires at least %d participants, got %d", e.Required, e.Actual)
}

type ErrInsufficientTeams struct {
	Actual int
}

func (e *ErrInsufficientTeams) Error() string {
	return fmt.Sprintf("team-based activity requires at least 2 distinct teams, got %d", e.Actual)
}

// ErrELOProcessing wraps an engine or persister failure that was recorded on the status row.
type ErrELOProcessing struct {
	ActivityID string
	Cause      error
}

func (e *ErrELOProcessing) Error() string {
	return fmt.Sprintf("rating processing failed for activity %s: %v", e.ActivityID, e.Cause)
}

func (e *ErrELOProcessing) Unwrap() error {
	return e.Cause
}

func NewErrNotFound(resourceType string, fieldName string, value interface{}) error {
	return &ErrNotFound{message: fmt.Sprintf("%s with %s %v not found", resourceType, fieldName, value)}
}

func NewErrUnauthorized() error {
	return &ErrUnauthorized{message: "Unauthorized"}
}

func NewErrForbidden(messages ...string) error {
	msg := "Forbidden"
	if len(messages) > 0 && messages[0] != "" {
		msg = messages[0]
	}
	return &ErrForbidden{message: msg}
}

func NewErrValidation(message string) error {
	return &ErrValidation{message: message}
}

func NewErrFieldValidation(message string, fields map[string]string) error {
	return &ErrValidation{message: message, Fields: fields}
}

func NewErrConflict(message string) error {
	return &ErrConflict{message: message}
}

func NewErrConcurrentCalculation(activityID, lockedBy string) error {
	return &ErrConcurrentCalculation{ActivityID: activityID, LockedBy: lockedBy}
}

func NewErrConcurrentRatingUpdate(userID string) error {
	return &ErrConcurrentRatingUpdate{UserID: userID}
}

func NewErrELOProcessing(activityID string, cause error) error {
	return &ErrELOProcessing{ActivityID: activityID, Cause: cause}
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	_, ok := err.(*ErrUnauthorized)
	return ok
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	_, ok := err.(*ErrForbidden)
	return ok
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if _, ok := err.(*ErrValidation); ok {
		return true
	}
	if _, ok := err.(*ErrInsufficientParticipants); ok {
		return true
	}
	_, ok := err.(*ErrInsufficientTeams)
	return ok
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	if _, ok := err.(*ErrConflict); ok {
		return true
	}
	if _, ok := err.(*ErrConcurrentCalculation); ok {
		return true
	}
	_, ok := err.(*ErrConcurrentRatingUpdate)
	return ok
}
