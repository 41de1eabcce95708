package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalBalance(t *testing.T) {
	balance := decimal.NewFromInt(250)

	assert.True(t, NormalBalance(domain.Asset, balance).Equal(balance))
	assert.True(t, NormalBalance(domain.Expense, balance).Equal(balance))
	assert.True(t, NormalBalance(domain.COGS, balance).Equal(balance))
	assert.True(t, NormalBalance(domain.Liability, balance).Equal(balance.Neg()))
	assert.True(t, NormalBalance(domain.Revenue, balance.Neg()).Equal(balance))
}
