package policy

import (
	"context"
	"time"
)

// Resolver maps an employee group to the policy version effective on a date.
type Resolver interface {
	// Resolve returns the latest version whose effective date <= date.
	// Fails with ErrPolicyNotFound when no version applies.
	Resolve(ctx context.Context, group Group, date time.Time) (Version, error)
}

// Service is the full policy surface: resolution for the engine plus the
// versioned settings operations backing the admin screens.
type Service interface {
	Resolver

	// ListVersions returns the version history for a group.
	ListVersions(ctx context.Context, group Group) ([]Version, error)

	// CreateVersion validates and appends a new effective-dated version.
	CreateVersion(ctx context.Context, req CreateVersionRequest) (Version, error)
}
