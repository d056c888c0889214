package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/go-playground/validator/v10"
)

type ServiceImpl struct {
	repo     policy.Repository
	validate *validator.Validate
}

func NewService(repo policy.Repository) policy.Service {
	return &ServiceImpl{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Resolve implements policy.Resolver. It selects the latest version whose
// effective date is on or before the computation date, never a future one.
func (s *ServiceImpl) Resolve(ctx context.Context, group policy.Group, date time.Time) (policy.Version, error) {
	v, err := s.repo.LatestEffective(ctx, group, date)
	if err != nil {
		return policy.Version{}, fmt.Errorf("resolve policy for %s on %s: %w", group, date.Format("2006-01-02"), err)
	}
	return v, nil
}

// ListVersions implements policy.Service.
func (s *ServiceImpl) ListVersions(ctx context.Context, group policy.Group) ([]policy.Version, error) {
	versions, err := s.repo.ListVersions(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list policy versions for %s: %w", group, err)
	}
	return versions, nil
}

// CreateVersion implements policy.Service. The request is rejected before it
// reaches any classifier: tag validation first, then the structural invariants.
func (s *ServiceImpl) CreateVersion(ctx context.Context, req policy.CreateVersionRequest) (policy.Version, error) {
	if err := s.validate.Struct(req); err != nil {
		return policy.Version{}, fmt.Errorf("policy payload rejected: %w", err)
	}

	v, err := req.ToVersion()
	if err != nil {
		return policy.Version{}, err
	}

	stored, err := s.repo.AppendVersion(ctx, v)
	if err != nil {
		return policy.Version{}, fmt.Errorf("append policy version: %w", err)
	}
	return stored, nil
}
