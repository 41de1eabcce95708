package repositories

import "context"

// TransactionManager runs fn inside one atomic store transaction. Repositories called with
// the ctx passed to fn participate in that transaction; fn returning an error, or ctx being
// cancelled before commit, rolls everything back.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
