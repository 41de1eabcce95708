package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is a row of the accounts table.
// ParentAccountID is nil for top-level accounts.
type Account struct {
	AccountID       string      `db:"account_id"`
	EntityID        string      `db:"entity_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID *string     `db:"parent_account_id"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
