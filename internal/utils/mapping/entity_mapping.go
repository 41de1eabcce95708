package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:     d.EntityID,
		Code:         d.Code,
		Name:         d.Name,
		BaseCurrency: d.BaseCurrency,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:     m.EntityID,
		Code:         m.Code,
		Name:         m.Name,
		BaseCurrency: m.BaseCurrency,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelLedgerBook(d domain.LedgerBook) models.LedgerBook {
	return models.LedgerBook{
		BookID:      d.BookID,
		EntityID:    d.EntityID,
		Code:        d.Code,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLedgerBook(m models.LedgerBook) domain.LedgerBook {
	return domain.LedgerBook{
		BookID:      m.BookID,
		EntityID:    m.EntityID,
		Code:        m.Code,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
