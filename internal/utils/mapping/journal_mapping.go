package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournal converts a domain Journal header to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:     d.JournalID,
		EntityID:      d.EntityID,
		JournalNumber: d.JournalNumber,
		Sequence:      d.Sequence,
		JournalDate:   d.JournalDate,
		Period:        d.Period,
		JournalType:   string(d.JournalType),
		Description:   d.Description,
		Reference:     d.Reference,
		Source:        d.Source,
		SourceID:      d.SourceID,
		Status:        models.JournalStatus(d.Status),
		ReversalOfID:  d.ReversalOfID,
		ApprovedAt:    d.ApprovedAt,
		ApprovedBy:    d.ApprovedBy,
		PostedAt:      d.PostedAt,
		PostedBy:      d.PostedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal and its lines to a domain Journal
func ToDomainJournal(m models.Journal, lines []models.JournalLine) domain.Journal {
	return domain.Journal{
		JournalID:     m.JournalID,
		EntityID:      m.EntityID,
		JournalNumber: m.JournalNumber,
		Sequence:      m.Sequence,
		JournalDate:   m.JournalDate.UTC(),
		Period:        m.Period,
		JournalType:   domain.JournalType(m.JournalType),
		Description:   m.Description,
		Reference:     m.Reference,
		Source:        m.Source,
		SourceID:      m.SourceID,
		Status:        domain.JournalStatus(m.Status),
		ReversalOfID:  m.ReversalOfID,
		ApprovedAt:    m.ApprovedAt,
		ApprovedBy:    m.ApprovedBy,
		PostedAt:      m.PostedAt,
		PostedBy:      m.PostedBy,
		Lines:         ToDomainJournalLineSlice(lines),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalID:      d.JournalID,
		BookID:         d.BookID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CurrencyCode:   d.CurrencyCode,
		AmountOriginal: d.AmountOriginal,
		FxRate:         d.FxRate,
		DepartmentID:   d.Dimensions.DepartmentID,
		ProjectID:      d.Dimensions.ProjectID,
		CustomerID:     d.Dimensions.CustomerID,
		SubledgerType:  d.SubledgerType,
		SubledgerID:    d.SubledgerID,
		Description:    d.Description,
		Reference:      d.Reference,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalID:      m.JournalID,
		BookID:         m.BookID,
		LineNumber:     m.LineNumber,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		CurrencyCode:   m.CurrencyCode,
		AmountOriginal: m.AmountOriginal,
		FxRate:         m.FxRate,
		Dimensions: domain.Dimensions{
			DepartmentID: m.DepartmentID,
			ProjectID:    m.ProjectID,
			CustomerID:   m.CustomerID,
		},
		SubledgerType: m.SubledgerType,
		SubledgerID:   m.SubledgerID,
		Description:   m.Description,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToModelAuditLog converts a domain AuditLog to a model AuditLog, encoding the value maps as JSON.
func ToModelAuditLog(d domain.AuditLog) (models.AuditLog, error) {
	m := models.AuditLog{
		AuditID:   d.AuditID,
		EntityID:  d.EntityID,
		JournalID: d.JournalID,
		Action:    string(d.Action),
		ActorID:   d.ActorID,
		CreatedAt: d.CreatedAt,
	}
	var err error
	if d.OldValues != nil {
		if m.OldValues, err = json.Marshal(d.OldValues); err != nil {
			return m, fmt.Errorf("marshal old values: %w", err)
		}
	}
	if d.NewValues != nil {
		if m.NewValues, err = json.Marshal(d.NewValues); err != nil {
			return m, fmt.Errorf("marshal new values: %w", err)
		}
	}
	return m, nil
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) (domain.AuditLog, error) {
	d := domain.AuditLog{
		AuditID:   m.AuditID,
		EntityID:  m.EntityID,
		JournalID: m.JournalID,
		Action:    domain.AuditAction(m.Action),
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
	if len(m.OldValues) > 0 {
		if err := json.Unmarshal(m.OldValues, &d.OldValues); err != nil {
			return d, fmt.Errorf("unmarshal old values: %w", err)
		}
	}
	if len(m.NewValues) > 0 {
		if err := json.Unmarshal(m.NewValues, &d.NewValues); err != nil {
			return d, fmt.Errorf("unmarshal new values: %w", err)
		}
	}
	return d, nil
}

// ToDomainLedgerEntry converts a joined ledger row to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerLine) domain.LedgerEntry {
	return domain.LedgerEntry{
		JournalID:          m.JournalID,
		JournalNumber:      m.JournalNumber,
		JournalDate:        m.JournalDate.UTC(),
		JournalDescription: m.JournalDescription,
		LineID:             m.LineID,
		BookID:             m.BookID,
		LineNumber:         m.LineNumber,
		Description:        m.Description,
		Reference:          m.Reference,
		Debit:              m.Debit,
		Credit:             m.Credit,
		CurrencyCode:       m.CurrencyCode,
		Dimensions: domain.Dimensions{
			DepartmentID: m.DepartmentID,
			ProjectID:    m.ProjectID,
			CustomerID:   m.CustomerID,
		},
	}
}

// ToJournalLineResponse converts a domain JournalLine to its API representation
func ToJournalLineResponse(d domain.JournalLine) dto.JournalLineResponse {
	return dto.JournalLineResponse{
		LineID:         d.LineID,
		BookID:         d.BookID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CurrencyCode:   d.CurrencyCode,
		AmountOriginal: d.AmountOriginal,
		FxRate:         d.FxRate,
		Dimensions:     d.Dimensions,
		SubledgerType:  d.SubledgerType,
		SubledgerID:    d.SubledgerID,
		Description:    d.Description,
		Reference:      d.Reference,
	}
}

// ToJournalResponse converts a domain Journal to its API representation. Lines are
// included only when the journal was loaded with them.
func ToJournalResponse(d domain.Journal) dto.JournalResponse {
	resp := dto.JournalResponse{
		JournalID:     d.JournalID,
		EntityID:      d.EntityID,
		JournalNumber: d.JournalNumber,
		JournalDate:   d.JournalDate.Format(time.DateOnly),
		Period:        d.Period,
		JournalType:   string(d.JournalType),
		Description:   d.Description,
		Reference:     d.Reference,
		Source:        d.Source,
		SourceID:      d.SourceID,
		Status:        string(d.Status),
		ReversalOfID:  d.ReversalOfID,
		ApprovedAt:    d.ApprovedAt,
		ApprovedBy:    d.ApprovedBy,
		PostedAt:      d.PostedAt,
		PostedBy:      d.PostedBy,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
	if len(d.Lines) > 0 {
		resp.BookIDs = d.BookIDs()
		resp.Lines = make([]dto.JournalLineResponse, len(d.Lines))
		for i, l := range d.Lines {
			resp.Lines[i] = ToJournalLineResponse(l)
		}
	}
	return resp
}

// ToListJournalsResponse converts a page of journal headers to its API representation
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) dto.ListJournalsResponse {
	out := dto.ListJournalsResponse{Journals: make([]dto.JournalResponse, len(journals)), NextToken: nextToken}
	for i, j := range journals {
		out.Journals[i] = ToJournalResponse(j)
	}
	return out
}
