package models

// Entity is a row of the entities table.
type Entity struct {
	EntityID     string `db:"entity_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	BaseCurrency string `db:"base_currency"`
	AuditFields
}

// LedgerBook is a row of the ledger_books table.
type LedgerBook struct {
	BookID   string `db:"book_id"`
	EntityID string `db:"entity_id"`
	Code     string `db:"code"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
