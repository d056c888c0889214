package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/google/uuid"
)

// PolicyRepository is an in-memory, append-only policy version store.
type PolicyRepository struct {
	mu       sync.RWMutex
	versions map[policy.Group][]policy.Version
}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{versions: make(map[policy.Group][]policy.Version)}
}

// ListVersions implements policy.Repository.
func (r *PolicyRepository) ListVersions(_ context.Context, group policy.Group) ([]policy.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]policy.Version, len(r.versions[group]))
	copy(out, r.versions[group])
	return out, nil
}

// LatestEffective implements policy.Repository.
func (r *PolicyRepository) LatestEffective(_ context.Context, group policy.Group, date time.Time) (policy.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *policy.Version
	for i := range r.versions[group] {
		v := r.versions[group][i]
		if v.EffectiveDate.After(date) {
			continue
		}
		if best == nil || v.EffectiveDate.After(best.EffectiveDate) {
			best = &r.versions[group][i]
		}
	}
	if best == nil {
		return policy.Version{}, policy.ErrPolicyNotFound
	}
	return *best, nil
}

// AppendVersion implements policy.Repository.
func (r *PolicyRepository) AppendVersion(_ context.Context, v policy.Version) (policy.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	r.versions[v.Group] = append(r.versions[v.Group], v)
	sort.Slice(r.versions[v.Group], func(i, j int) bool {
		return r.versions[v.Group][i].EffectiveDate.Before(r.versions[v.Group][j].EffectiveDate)
	})
	return v, nil
}
