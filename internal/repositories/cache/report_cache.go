// Package cache keeps entity scoped financial reports in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL bounds how long a report survives when no posting invalidates it.
	DefaultTTL = 60 * time.Second

	// KeyPrefix is the prefix of every report cache key
	KeyPrefix = "ledger:reports:"
)

// Client is the subset of redis.Cmdable the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// ReportCache decorates a reporting service. Trial balance, income statement and balance
// sheet results are cached per entity; account ledgers and balances pass straight through.
// Invalidation bumps a per-entity version so stale keys are never read again and expire on their own.
type ReportCache struct {
	next   portssvc.ReportingSvcFacade
	client Client
	ttl    time.Duration
}

var (
	_ portssvc.ReportingSvcFacade = (*ReportCache)(nil)
	_ portssvc.ReportInvalidator  = (*ReportCache)(nil)
)

// NewReportCache wraps next. A non-positive ttl falls back to DefaultTTL.
func NewReportCache(next portssvc.ReportingSvcFacade, client Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{next: next, client: client, ttl: ttl}
}

func versionKey(entityID string) string {
	return KeyPrefix + entityID + ":version"
}

func queryKey(q domain.TrialBalanceQuery) string {
	asOf := "-"
	if q.AsOf != nil {
		asOf = q.AsOf.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("book=%s|period=%s|asOf=%s|sub=%t", q.BookID, q.Period, asOf, q.IncludeSubAccounts)
}

// InvalidateEntity makes every cached report of entityID unreachable.
func (c *ReportCache) InvalidateEntity(ctx context.Context, entityID string) error {
	if err := c.client.Incr(ctx, versionKey(entityID)).Err(); err != nil {
		return fmt.Errorf("failed to bump report cache version: %w", err)
	}
	return nil
}

func (c *ReportCache) reportKey(ctx context.Context, kind string, q domain.TrialBalanceQuery) (string, error) {
	version, err := c.client.Get(ctx, versionKey(q.EntityID)).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s:v%s:%s:%s", KeyPrefix, q.EntityID, version, kind, queryKey(q)), nil
}

// cached serves kind from Redis or computes it with load and stores the result.
// Redis failures are logged and never fail the report.
func cached[T any](ctx context.Context, c *ReportCache, kind string, q domain.TrialBalanceQuery, load func() (*T, error)) (*T, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("component", "report_cache"), slog.String("report", kind))

	key, err := c.reportKey(ctx, kind, q)
	if err != nil {
		logger.Warn("cache error", slog.String("operation", "version"), slog.String("error", err.Error()))
		return load()
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var report T
		if uerr := json.Unmarshal(raw, &report); uerr == nil {
			logger.Debug("cache hit", slog.String("entity_id", q.EntityID))
			return &report, nil
		}
		logger.Warn("discarding undecodable cached report", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		logger.Debug("cache miss", slog.String("entity_id", q.EntityID))
	default:
		logger.Warn("cache error", slog.String("operation", "get"), slog.String("error", err.Error()))
	}

	report, err := load()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(report)
	if err != nil {
		logger.Warn("failed to marshal report", slog.String("error", err.Error()))
		return report, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("cache error", slog.String("operation", "set"), slog.String("error", err.Error()))
	}
	return report, nil
}

func (c *ReportCache) TrialBalance(ctx context.Context, q domain.TrialBalanceQuery) (*domain.TrialBalance, error) {
	return cached(ctx, c, "trial_balance", q, func() (*domain.TrialBalance, error) { return c.next.TrialBalance(ctx, q) })
}

func (c *ReportCache) IncomeStatement(ctx context.Context, q domain.TrialBalanceQuery) (*domain.IncomeStatement, error) {
	return cached(ctx, c, "income_statement", q, func() (*domain.IncomeStatement, error) { return c.next.IncomeStatement(ctx, q) })
}

func (c *ReportCache) BalanceSheet(ctx context.Context, q domain.TrialBalanceQuery) (*domain.BalanceSheet, error) {
	return cached(ctx, c, "balance_sheet", q, func() (*domain.BalanceSheet, error) { return c.next.BalanceSheet(ctx, q) })
}

func (c *ReportCache) AccountLedger(ctx context.Context, q domain.AccountLedgerQuery) (*domain.AccountLedger, error) {
	return c.next.AccountLedger(ctx, q)
}

func (c *ReportCache) AccountBalance(ctx context.Context, accountID, bookID string, asOf *time.Time) (*domain.AccountBalance, error) {
	return c.next.AccountBalance(ctx, accountID, bookID, asOf)
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
