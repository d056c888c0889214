package quota

import "fmt"

// YearMonth keys a ledger entry; quota resets implicitly when the key changes.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Entry is the monthly short-leave counter for one employee.
type Entry struct {
	EmployeeID string
	YearMonth  YearMonth
	CountUsed  int
}

// Usage is the read model backing the "N of M short leaves used" display.
type Usage struct {
	EmployeeID string `json:"employee_id"`
	YearMonth  string `json:"year_month"`
	CountUsed  int    `json:"count_used"`
	Cap        int    `json:"cap"`
	Remaining  int    `json:"remaining"`
}
