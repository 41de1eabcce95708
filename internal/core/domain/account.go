package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	COGS      AccountType = "COGS"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, COGS:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense || t == COGS
}

// Account is a chart-of-accounts node.
type Account struct {
	AccountID       string      `json:"accountID"`
	EntityID        string      `json:"entityID"`
	Code            string      `json:"code"` // Sortable, unique per entity
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID,omitempty"` // Nullable self reference
	IsActive        bool        `json:"isActive"`
	AuditFields
}
