package policy

import (
	"context"
	"time"
)

// Repository is the append-only policy version store. Edits add versions;
// nothing is ever updated or deleted, so historical computations stay stable.
type Repository interface {
	// ListVersions returns all versions for a group ordered by effective date ascending.
	ListVersions(ctx context.Context, group Group) ([]Version, error)

	// LatestEffective returns the newest version with effective date <= date.
	LatestEffective(ctx context.Context, group Group, date time.Time) (Version, error)

	// AppendVersion stores a new effective-dated version.
	AppendVersion(ctx context.Context, v Version) (Version, error)
}
