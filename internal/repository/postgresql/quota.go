package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type quotaLedgerImpl struct {
	db *database.DB
}

func NewQuotaLedger(db *database.DB) quota.Ledger {
	return &quotaLedgerImpl{db: db}
}

// TryConsume implements quota.Ledger. One guarded UPSERT keeps the
// compare-and-increment atomic: the row only changes while count_used < cap,
// so the counter can never pass the cap however many engines race on it.
func (l *quotaLedgerImpl) TryConsume(ctx context.Context, employeeID string, ym quota.YearMonth, cap int) (bool, error) {
	q := GetQuerier(ctx, l.db)

	// The SELECT guard covers the fresh-row path (cap of zero inserts
	// nothing); the DO UPDATE guard covers the existing-row path.
	query := `
		INSERT INTO short_leave_quotas (employee_id, year_month, count_used, updated_at)
		SELECT $1, $2, 1, NOW()
		WHERE $3 >= 1
		ON CONFLICT (employee_id, year_month) DO UPDATE
		SET count_used = short_leave_quotas.count_used + 1,
		    updated_at = NOW()
		WHERE short_leave_quotas.count_used < $3
	`
	result, err := q.Exec(ctx, query, employeeID, ym.String(), cap)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// Release implements quota.Ledger.
func (l *quotaLedgerImpl) Release(ctx context.Context, employeeID string, ym quota.YearMonth) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE short_leave_quotas
		SET count_used = count_used - 1,
		    updated_at = NOW()
		WHERE employee_id = $1 AND year_month = $2
		AND count_used > 0
	`
	result, err := q.Exec(ctx, query, employeeID, ym.String())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return quota.ErrNegativeRelease
	}
	return nil
}

// CountUsed implements quota.Ledger. A missing row reads as zero.
func (l *quotaLedgerImpl) CountUsed(ctx context.Context, employeeID string, ym quota.YearMonth) (int, error) {
	q := GetQuerier(ctx, l.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT count_used FROM short_leave_quotas WHERE employee_id = $1 AND year_month = $2`,
		employeeID, ym.String()).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
