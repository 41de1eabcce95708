package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// PeriodLayout is the time layout of an accounting period (YYYY-MM).
const PeriodLayout = "2006-01"

// PeriodOf returns the accounting period a date falls into.
func PeriodOf(t time.Time) string {
	return t.UTC().Format(PeriodLayout)
}

// ValidPeriod reports whether p is a well formed YYYY-MM period.
func ValidPeriod(p string) bool {
	if len(p) != len(PeriodLayout) {
		return false
	}
	_, err := time.Parse(PeriodLayout, p)
	return err == nil
}
