package common

import (
	"context"

	"github.com/google/uuid"
)

type ContextKey string

const (
	// Caller identity (populated by the auth middleware)
	UserIDKey   ContextKey = "user_id"
	UserRoleKey ContextKey = "user_role"

	// Request (ie: msg header, meta)
	RequestIDKey ContextKey = "x-request-id"
)

// User roles delivered by the external auth collaborator.
type UserRole string

const (
	RoleRegular     UserRole = "regular"
	RoleAdmin       UserRole = "admin"
	RoleDeactivated UserRole = "deactivated"
)

// GetUserID returns the authenticated caller's id, or uuid.Nil when unauthenticated.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUserRole returns the caller's role, defaulting to regular.
func GetUserRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(UserRoleKey).(UserRole); ok {
		return role
	}
	return RoleRegular
}

// IsAdmin reports whether the caller carries the admin role.
func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == RoleAdmin
}
