package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntityReader defines read operations for entities.
type EntityReader interface {
	// FindEntityByID returns an error wrapping apperrors.ErrNotFound when absent.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
}

// BookReader defines read operations for ledger books.
type BookReader interface {
	// FindBooksByIDs returns the books among bookIDs that belong to entityID. Missing ids are simply absent.
	FindBooksByIDs(ctx context.Context, entityID string, bookIDs []string) ([]domain.LedgerBook, error)
}

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts among accountIDs that belong to entityID.
	FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) ([]domain.Account, error)
	ListAccountsByEntity(ctx context.Context, entityID string) ([]domain.Account, error)
}

// CurrencyReader defines read operations for currencies.
type CurrencyReader interface {
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
}

// FxRateReader defines read operations for exchange rates.
type FxRateReader interface {
	// FindLatestFxRate returns the rate with the greatest EffectiveDate <= asOf for the pair.
	FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error)
}

// ReferenceDataWriter loads reference data. It is used by the seed command and tests.
type ReferenceDataWriter interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	SaveEntity(ctx context.Context, entity domain.Entity) error
	SaveBook(ctx context.Context, book domain.LedgerBook) error
	SaveAccount(ctx context.Context, account domain.Account) error
	SaveFxRate(ctx context.Context, rate domain.FxRate) error
}

// ReferenceDataReader combines every reference data lookup the posting engine performs.
type ReferenceDataReader interface {
	EntityReader
	BookReader
	AccountReader
	CurrencyReader
	FxRateReader
}
