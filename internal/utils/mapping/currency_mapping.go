package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Symbol:       d.Symbol,
		Name:         d.Name,
		Precision:    int16(d.Precision),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    int32(m.Precision),
	}
}

// ToModelFxRate converts a domain FxRate to a model FxRate
func ToModelFxRate(d domain.FxRate) models.FxRate {
	return models.FxRate{
		RateID:        d.RateID,
		FromCurrency:  d.FromCurrency,
		ToCurrency:    d.ToCurrency,
		Rate:          d.Rate,
		EffectiveDate: d.EffectiveDate,
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate
func ToDomainFxRate(m models.FxRate) domain.FxRate {
	return domain.FxRate{
		RateID:        m.RateID,
		FromCurrency:  m.FromCurrency,
		ToCurrency:    m.ToCurrency,
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
	}
}
