package accounting

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalBalance presents a debit-minus-credit balance from the account type's point of view.
// Debit-normal accounts keep the sign, credit-normal accounts flip it.
func NormalBalance(accountType domain.AccountType, debitMinusCredit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debitMinusCredit
	}
	return debitMinusCredit.Neg()
}
