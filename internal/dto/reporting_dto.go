package dto

import (
	"fmt"
	"time"
)

// ReportParams are the shared query parameters of the statement reports.
type ReportParams struct {
	EntityID           string `form:"entityID" binding:"required"`
	BookID             string `form:"bookID"`
	Period             string `form:"period" binding:"omitempty,yyyymm"`
	AsOf               string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	IncludeSubAccounts bool   `form:"includeSubAccounts"`
}

// AccountLedgerParams are the query parameters of the account ledger report.
type AccountLedgerParams struct {
	AccountID string `form:"accountID" binding:"required"`
	BookID    string `form:"bookID"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Offset    int    `form:"offset" binding:"min=0"`
}

// AccountBalanceParams are the query parameters of the account balance report.
type AccountBalanceParams struct {
	AccountID string `form:"accountID" binding:"required"`
	BookID    string `form:"bookID"`
	AsOf      string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// ParseDate turns an optional YYYY-MM-DD string into a date pointer. The date is
// moved to its last instant so that "as of" and "to" bounds include the whole day.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
