package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/policy"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.Repository {
	return &policyRepositoryImpl{db: db}
}

// policyDoc is the JSONB shape a policy version is stored as. Storing the
// whole rule set as one document keeps versions immutable rows.
type policyDoc struct {
	StandardStart string `json:"standard_start"`
	StandardEnd   string `json:"standard_end"`

	GraceUntil    string `json:"grace_until"`
	HalfDayAfter  string `json:"half_day_after"`
	HalfDayBefore string `json:"half_day_before"`

	MorningStart                string `json:"morning_start"`
	MorningEnd                  string `json:"morning_end"`
	EveningStart                string `json:"evening_start"`
	EveningEnd                  string `json:"evening_end"`
	MaxPerMonth                 int    `json:"max_per_month"`
	PreApprovalRequired         bool   `json:"pre_approval_required"`
	MinimumWorkingHoursRequired bool   `json:"minimum_working_hours_required"`

	HalfDayAppliesAfter      string `json:"half_day_applies_after"`
	HalfDayAppliesBefore     string `json:"half_day_applies_before"`
	ShortLeaveExcusesHalfDay bool   `json:"short_leave_excuses_half_day"`

	MinHoursForOT         float64 `json:"min_hours_for_ot"`
	WeekendFullOT         bool    `json:"weekend_full_ot"`
	OTPreApprovalRequired bool    `json:"ot_pre_approval_required"`
	HolidayAllHoursAsOT   bool    `json:"holiday_all_hours_as_ot"`
}

func docFromPolicy(p policy.GroupPolicy) policyDoc {
	return policyDoc{
		StandardStart:               p.StandardStart.String(),
		StandardEnd:                 p.StandardEnd.String(),
		GraceUntil:                  p.LateArrival.GraceUntil.String(),
		HalfDayAfter:                p.LateArrival.HalfDayAfter.String(),
		HalfDayBefore:               p.LateArrival.HalfDayBefore.String(),
		MorningStart:                p.ShortLeave.MorningWindow.Start.String(),
		MorningEnd:                  p.ShortLeave.MorningWindow.End.String(),
		EveningStart:                p.ShortLeave.EveningWindow.Start.String(),
		EveningEnd:                  p.ShortLeave.EveningWindow.End.String(),
		MaxPerMonth:                 p.ShortLeave.MaxPerMonth,
		PreApprovalRequired:         p.ShortLeave.PreApprovalRequired,
		MinimumWorkingHoursRequired: p.ShortLeave.MinimumWorkingHoursRequired,
		HalfDayAppliesAfter:         p.HalfDay.AppliesAfter.String(),
		HalfDayAppliesBefore:        p.HalfDay.AppliesBefore.String(),
		ShortLeaveExcusesHalfDay:    p.HalfDay.ShortLeaveExcusesHalfDay,
		MinHoursForOT:               p.Overtime.NormalDay.MinHoursForOT,
		WeekendFullOT:               p.Overtime.NormalDay.WeekendFullOT,
		OTPreApprovalRequired:       p.Overtime.NormalDay.PreApprovalRequired,
		HolidayAllHoursAsOT:         p.Overtime.Holiday.AllHoursAsOT,
	}
}

func (d policyDoc) toPolicy(group policy.Group) (policy.GroupPolicy, error) {
	var p policy.GroupPolicy
	p.Group = group

	var err error
	parse := func(dst *policy.MinuteOfDay, s string) {
		if err != nil {
			return
		}
		var m policy.MinuteOfDay
		m, err = policy.ParseMinuteOfDay(s)
		*dst = m
	}
	parse(&p.StandardStart, d.StandardStart)
	parse(&p.StandardEnd, d.StandardEnd)
	parse(&p.LateArrival.GraceUntil, d.GraceUntil)
	parse(&p.LateArrival.HalfDayAfter, d.HalfDayAfter)
	parse(&p.LateArrival.HalfDayBefore, d.HalfDayBefore)
	parse(&p.ShortLeave.MorningWindow.Start, d.MorningStart)
	parse(&p.ShortLeave.MorningWindow.End, d.MorningEnd)
	parse(&p.ShortLeave.EveningWindow.Start, d.EveningStart)
	parse(&p.ShortLeave.EveningWindow.End, d.EveningEnd)
	parse(&p.HalfDay.AppliesAfter, d.HalfDayAppliesAfter)
	parse(&p.HalfDay.AppliesBefore, d.HalfDayAppliesBefore)
	if err != nil {
		return policy.GroupPolicy{}, err
	}

	p.ShortLeave.MaxPerMonth = d.MaxPerMonth
	p.ShortLeave.PreApprovalRequired = d.PreApprovalRequired
	p.ShortLeave.MinimumWorkingHoursRequired = d.MinimumWorkingHoursRequired
	p.HalfDay.ShortLeaveExcusesHalfDay = d.ShortLeaveExcusesHalfDay
	p.Overtime.NormalDay.MinHoursForOT = d.MinHoursForOT
	p.Overtime.NormalDay.WeekendFullOT = d.WeekendFullOT
	p.Overtime.NormalDay.PreApprovalRequired = d.OTPreApprovalRequired
	p.Overtime.Holiday.AllHoursAsOT = d.HolidayAllHoursAsOT
	return p, nil
}

// ListVersions implements policy.Repository.
func (r *policyRepositoryImpl) ListVersions(ctx context.Context, group policy.Group) ([]policy.Version, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, group_name, effective_date, rules, created_at
		FROM policy_versions
		WHERE group_name = $1
		ORDER BY effective_date ASC
	`
	rows, err := q.Query(ctx, query, string(group))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]policy.Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// LatestEffective implements policy.Repository.
func (r *policyRepositoryImpl) LatestEffective(ctx context.Context, group policy.Group, date time.Time) (policy.Version, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, group_name, effective_date, rules, created_at
		FROM policy_versions
		WHERE group_name = $1 AND effective_date <= $2
		ORDER BY effective_date DESC
		LIMIT 1
	`
	row := q.QueryRow(ctx, query, string(group), date)
	v, err := scanVersionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Version{}, policy.ErrPolicyNotFound
		}
		return policy.Version{}, err
	}
	return v, nil
}

// AppendVersion implements policy.Repository. Versions are append-only rows;
// nothing updates or deletes them.
func (r *policyRepositoryImpl) AppendVersion(ctx context.Context, v policy.Version) (policy.Version, error) {
	q := GetQuerier(ctx, r.db)

	doc, err := json.Marshal(docFromPolicy(v.Policy))
	if err != nil {
		return policy.Version{}, fmt.Errorf("encode policy rules: %w", err)
	}

	query := `
		INSERT INTO policy_versions (id, group_name, effective_date, rules, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`
	if err := q.QueryRow(ctx, query, string(v.Group), v.EffectiveDate, doc).
		Scan(&v.ID, &v.CreatedAt); err != nil {
		return policy.Version{}, err
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersionRow(row rowScanner) (policy.Version, error) {
	var v policy.Version
	var group string
	var raw []byte
	if err := row.Scan(&v.ID, &group, &v.EffectiveDate, &raw, &v.CreatedAt); err != nil {
		return policy.Version{}, err
	}
	v.Group = policy.Group(group)

	var doc policyDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return policy.Version{}, fmt.Errorf("decode policy rules: %w", err)
	}
	p, err := doc.toPolicy(v.Group)
	if err != nil {
		return policy.Version{}, fmt.Errorf("decode policy rules: %w", err)
	}
	v.Policy = p
	return v, nil
}

func scanVersion(rows pgx.Rows) (policy.Version, error) {
	return scanVersionRow(rows)
}
