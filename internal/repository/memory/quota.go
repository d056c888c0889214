package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/quota"
)

type quotaKey struct {
	employeeID string
	ym         quota.YearMonth
}

// QuotaLedger is an in-memory, mutex-serialized short-leave counter.
// A single lock keeps every (employee, month) compare-and-increment atomic;
// contention is negligible at roster scale.
type QuotaLedger struct {
	mu     sync.Mutex
	counts map[quotaKey]int
}

func NewQuotaLedger() *QuotaLedger {
	return &QuotaLedger{counts: make(map[quotaKey]int)}
}

// TryConsume implements quota.Ledger.
func (l *QuotaLedger) TryConsume(_ context.Context, employeeID string, ym quota.YearMonth, cap int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := quotaKey{employeeID: employeeID, ym: ym}
	if l.counts[k] >= cap {
		return false, nil
	}
	l.counts[k]++
	return true, nil
}

// Release implements quota.Ledger.
func (l *QuotaLedger) Release(_ context.Context, employeeID string, ym quota.YearMonth) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := quotaKey{employeeID: employeeID, ym: ym}
	if l.counts[k] <= 0 {
		return quota.ErrNegativeRelease
	}
	l.counts[k]--
	return nil
}

// CountUsed implements quota.Ledger.
func (l *QuotaLedger) CountUsed(_ context.Context, employeeID string, ym quota.YearMonth) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[quotaKey{employeeID: employeeID, ym: ym}], nil
}
