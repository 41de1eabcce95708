package main

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/seed"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// ledgerStore is what the commands need from either store driver.
type ledgerStore interface {
	portsrepo.LedgerStore
	portsrepo.ReferenceDataWriter
}

// openStore connects the configured store driver. The returned close func is never nil.
func openStore(ctx context.Context, a *app) (ledgerStore, func(), error) {
	if a.cfg.StoreDriver == config.StoreDriverMemory {
		a.logger.Warn("Using the in-memory ledger store; data is lost on exit")
		store := memory.NewStore()
		f, err := seed.Load("")
		if err != nil {
			return nil, func() {}, err
		}
		if _, err := f.Apply(ctx, store, "system"); err != nil {
			return nil, func() {}, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return store, func() {}, nil
	}

	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, database.PoolOptions{
		StatementTimeout: a.cfg.DBStatementTimeout,
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pgsql.NewStore(pool, a.cfg.DBStatementTimeout), func() { database.ClosePgxPool(pool) }, nil
}
