// Package seed loads reference data (currencies, entities, books, accounts and fx rates)
// from a YAML document into a ledger store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Currency is a currency row.
type Currency struct {
	Code      string `yaml:"code"`
	Symbol    string `yaml:"symbol"`
	Name      string `yaml:"name"`
	Precision *int32 `yaml:"precision"`
}

// Book is a ledger book of an entity.
type Book struct {
	ID       string `yaml:"id"`
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Inactive bool   `yaml:"inactive"`
}

// Account is a chart-of-accounts node. Parent refers to another account code of the same entity.
type Account struct {
	ID       string `yaml:"id"`
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Parent   string `yaml:"parent"`
	Inactive bool   `yaml:"inactive"`
}

// Entity declares an entity with its books and chart of accounts.
type Entity struct {
	ID           string    `yaml:"id"`
	Code         string    `yaml:"code"`
	Name         string    `yaml:"name"`
	BaseCurrency string    `yaml:"base_currency"`
	Books        []Book    `yaml:"books"`
	Accounts     []Account `yaml:"accounts"`
}

// FxRate is one dated conversion rate. Rate is kept as a string so YAML floats never touch it.
type FxRate struct {
	From          string `yaml:"from"`
	To            string `yaml:"to"`
	Rate          string `yaml:"rate"`
	EffectiveDate string `yaml:"effective_date"`
}

// File is the root of a seed document.
type File struct {
	Currencies []Currency `yaml:"currencies"`
	Entities   []Entity   `yaml:"entities"`
	FxRates    []FxRate   `yaml:"fx_rates"`
}

// Target is what a seed is written to.
type Target interface {
	portsrepo.ReferenceDataWriter
	portsrepo.TransactionManager
}

// Load reads and validates the seed file at path. An empty path selects the built-in seed.
func Load(path string) (*File, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks references inside the document.
func (f *File) Validate() error {
	currencies := make(map[string]bool, len(f.Currencies))
	for _, c := range f.Currencies {
		if len(c.Code) != 3 || strings.ToUpper(c.Code) != c.Code {
			return fmt.Errorf("currency code %q must be three upper-case letters", c.Code)
		}
		if c.Precision != nil && (*c.Precision < 0 || *c.Precision > 8) {
			return fmt.Errorf("currency %s: precision must be between 0 and 8", c.Code)
		}
		currencies[c.Code] = true
	}

	for _, e := range f.Entities {
		if e.Code == "" {
			return fmt.Errorf("entity code is required")
		}
		if !currencies[e.BaseCurrency] {
			return fmt.Errorf("entity %s: unknown base currency %q", e.Code, e.BaseCurrency)
		}
		books := make(map[string]bool)
		for _, b := range e.Books {
			if b.Code == "" || books[b.Code] {
				return fmt.Errorf("entity %s: book code %q is empty or duplicated", e.Code, b.Code)
			}
			books[b.Code] = true
		}
		codes := make(map[string]bool)
		for _, a := range e.Accounts {
			if a.Code == "" || codes[a.Code] {
				return fmt.Errorf("entity %s: account code %q is empty or duplicated", e.Code, a.Code)
			}
			if !domain.AccountType(a.Type).Valid() {
				return fmt.Errorf("entity %s: account %s has unknown type %q", e.Code, a.Code, a.Type)
			}
			codes[a.Code] = true
		}
		for _, a := range e.Accounts {
			if a.Parent != "" && !codes[a.Parent] {
				return fmt.Errorf("entity %s: account %s has unknown parent %q", e.Code, a.Code, a.Parent)
			}
		}
	}

	for _, r := range f.FxRates {
		if !currencies[r.From] || !currencies[r.To] {
			return fmt.Errorf("fx rate %s/%s references an undeclared currency", r.From, r.To)
		}
		rate, err := decimal.NewFromString(r.Rate)
		if err != nil || !rate.IsPositive() {
			return fmt.Errorf("fx rate %s/%s: rate %q must be a positive decimal", r.From, r.To, r.Rate)
		}
		if _, err := time.Parse(time.DateOnly, r.EffectiveDate); err != nil {
			return fmt.Errorf("fx rate %s/%s: effective_date must be YYYY-MM-DD", r.From, r.To)
		}
	}
	return nil
}

// Stats counts what Apply wrote.
type Stats struct {
	Currencies int
	Entities   int
	Books      int
	Accounts   int
	FxRates    int
}

// Apply writes the document to target in one transaction. Rows are upserted, so running a seed
// twice is harmless. Missing ids are derived from codes.
func (f *File) Apply(ctx context.Context, target Target, actorID string) (Stats, error) {
	var stats Stats
	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}

	err := target.RunInTx(ctx, func(ctx context.Context) error {
		for _, c := range f.Currencies {
			precision := domain.DefaultCurrencyPrecision
			if c.Precision != nil {
				precision = *c.Precision
			}
			if err := target.SaveCurrency(ctx, domain.Currency{CurrencyCode: c.Code, Symbol: c.Symbol, Name: c.Name, Precision: precision}); err != nil {
				return fmt.Errorf("currency %s: %w", c.Code, err)
			}
			stats.Currencies++
		}

		for _, e := range f.Entities {
			entityID := idOr(e.ID, "ent", e.Code)
			if err := target.SaveEntity(ctx, domain.Entity{
				EntityID: entityID, Code: e.Code, Name: e.Name, BaseCurrency: e.BaseCurrency, AuditFields: audit,
			}); err != nil {
				return fmt.Errorf("entity %s: %w", e.Code, err)
			}
			stats.Entities++

			for _, b := range e.Books {
				if err := target.SaveBook(ctx, domain.LedgerBook{
					BookID: idOr(b.ID, "book", e.Code, b.Code), EntityID: entityID, Code: b.Code, Name: b.Name,
					IsActive: !b.Inactive, AuditFields: audit,
				}); err != nil {
					return fmt.Errorf("book %s/%s: %w", e.Code, b.Code, err)
				}
				stats.Books++
			}

			ids := make(map[string]string, len(e.Accounts))
			for _, a := range e.Accounts {
				ids[a.Code] = idOr(a.ID, "acc", e.Code, a.Code)
			}
			for _, a := range parentsFirst(e.Accounts) {
				acc := domain.Account{
					AccountID: ids[a.Code], EntityID: entityID, Code: a.Code, Name: a.Name,
					AccountType: domain.AccountType(a.Type), IsActive: !a.Inactive, AuditFields: audit,
				}
				if a.Parent != "" {
					parent := ids[a.Parent]
					acc.ParentAccountID = &parent
				}
				if err := target.SaveAccount(ctx, acc); err != nil {
					return fmt.Errorf("account %s/%s: %w", e.Code, a.Code, err)
				}
				stats.Accounts++
			}
		}

		for _, r := range f.FxRates {
			effective, _ := time.Parse(time.DateOnly, r.EffectiveDate)
			if err := target.SaveFxRate(ctx, domain.FxRate{
				RateID:        idOr("", "fx", r.From, r.To, r.EffectiveDate),
				FromCurrency:  r.From,
				ToCurrency:    r.To,
				Rate:          decimal.RequireFromString(r.Rate),
				EffectiveDate: effective,
			}); err != nil {
				return fmt.Errorf("fx rate %s/%s: %w", r.From, r.To, err)
			}
			stats.FxRates++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// idOr returns id, or a stable UUID derived from the natural key parts.
func idOr(id string, parts ...string) string {
	if id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, ":"))).String()
}

// parentsFirst orders accounts so that every parent precedes its children.
func parentsFirst(accounts []Account) []Account {
	out := make([]Account, 0, len(accounts))
	placed := make(map[string]bool, len(accounts))
	pending := accounts
	for len(pending) > 0 {
		var next []Account
		for _, a := range pending {
			if a.Parent == "" || placed[a.Parent] {
				out = append(out, a)
				placed[a.Code] = true
				continue
			}
			next = append(next, a)
		}
		if len(next) == len(pending) {
			// Cycle: Validate only checks that parents exist, so keep the remainder in file order.
			return append(out, next...)
		}
		pending = next
	}
	return out
}
