package domain

// Entity is a legal or reporting unit. It owns books, accounts and journals.
type Entity struct {
	EntityID     string `json:"entityID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	BaseCurrency string `json:"baseCurrency"` // FK -> currencies.currency_code
	AuditFields
}

// LedgerBook is a named reporting book (local GAAP, group IFRS, ...) under an entity.
type LedgerBook struct {
	BookID   string `json:"bookID"`
	EntityID string `json:"entityID"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
