package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Client ---
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *MockClient) Incr(ctx context.Context, key string) *redis.IntCmd {
	args := m.Called(ctx, key)
	return redis.NewIntResult(1, args.Error(0))
}

// --- Mock reporting service ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, q domain.TrialBalanceQuery) (*domain.TrialBalance, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, q domain.TrialBalanceQuery) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, q domain.TrialBalanceQuery) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) AccountLedger(ctx context.Context, q domain.AccountLedgerQuery) (*domain.AccountLedger, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockReportingService) AccountBalance(ctx context.Context, accountID, bookID string, asOf *time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, bookID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

type ReportCacheTestSuite struct {
	suite.Suite
	client *MockClient
	next   *MockReportingService
	cache  *ReportCache
	ctx    context.Context
	query  domain.TrialBalanceQuery
}

func TestReportCacheSuite(t *testing.T) {
	suite.Run(t, new(ReportCacheTestSuite))
}

func (s *ReportCacheTestSuite) SetupTest() {
	s.client = new(MockClient)
	s.next = new(MockReportingService)
	s.cache = NewReportCache(s.next, s.client, time.Minute)
	s.ctx = context.Background()
	s.query = domain.TrialBalanceQuery{EntityID: "ent-us01", BookID: "book-local", Period: "2025-02"}
}

const tbKey = "ledger:reports:ent-us01:v3:trial_balance:book=book-local|period=2025-02|asOf=-|sub=false"

func (s *ReportCacheTestSuite) TestMissLoadsAndStores() {
	tb := &domain.TrialBalance{EntityID: "ent-us01", TotalDebits: decimal.NewFromInt(1800), IsBalanced: true}
	s.client.On("Get", s.ctx, "ledger:reports:ent-us01:version").Return("3", nil)
	s.client.On("Get", s.ctx, tbKey).Return("", redis.Nil)
	s.next.On("TrialBalance", s.ctx, s.query).Return(tb, nil).Once()
	s.client.On("Set", s.ctx, tbKey, mock.AnythingOfType("[]uint8"), time.Minute).Return(nil).Once()

	got, err := s.cache.TrialBalance(s.ctx, s.query)
	s.Require().NoError(err)
	s.Same(tb, got)
	s.client.AssertExpectations(s.T())
	s.next.AssertExpectations(s.T())
}

func (s *ReportCacheTestSuite) TestHitSkipsService() {
	stored, err := json.Marshal(domain.TrialBalance{EntityID: "ent-us01", TotalDebits: decimal.NewFromInt(1800), IsBalanced: true})
	s.Require().NoError(err)
	s.client.On("Get", s.ctx, "ledger:reports:ent-us01:version").Return("3", nil)
	s.client.On("Get", s.ctx, tbKey).Return(string(stored), nil)

	got, err := s.cache.TrialBalance(s.ctx, s.query)
	s.Require().NoError(err)
	s.True(got.TotalDebits.Equal(decimal.NewFromInt(1800)))
	s.True(got.IsBalanced)
	s.next.AssertNotCalled(s.T(), "TrialBalance", mock.Anything, mock.Anything)
}

func (s *ReportCacheTestSuite) TestMissingVersionStartsAtZero() {
	key := "ledger:reports:ent-us01:v0:balance_sheet:book=book-local|period=2025-02|asOf=-|sub=false"
	bs := &domain.BalanceSheet{EntityID: "ent-us01", IsBalanced: true}
	s.client.On("Get", s.ctx, "ledger:reports:ent-us01:version").Return("", redis.Nil)
	s.client.On("Get", s.ctx, key).Return("", redis.Nil)
	s.next.On("BalanceSheet", s.ctx, s.query).Return(bs, nil).Once()
	s.client.On("Set", s.ctx, key, mock.Anything, time.Minute).Return(nil).Once()

	got, err := s.cache.BalanceSheet(s.ctx, s.query)
	s.Require().NoError(err)
	s.Same(bs, got)
	s.client.AssertExpectations(s.T())
}

func (s *ReportCacheTestSuite) TestRedisDownFallsThrough() {
	is := &domain.IncomeStatement{EntityID: "ent-us01", NetIncome: decimal.NewFromInt(200)}
	s.client.On("Get", s.ctx, "ledger:reports:ent-us01:version").Return("", errors.New("connection refused"))
	s.next.On("IncomeStatement", s.ctx, s.query).Return(is, nil).Once()

	got, err := s.cache.IncomeStatement(s.ctx, s.query)
	s.Require().NoError(err)
	s.Same(is, got)
	s.client.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportCacheTestSuite) TestServiceErrorIsNotCached() {
	boom := errors.New("boom")
	s.client.On("Get", s.ctx, "ledger:reports:ent-us01:version").Return("3", nil)
	s.client.On("Get", s.ctx, tbKey).Return("", redis.Nil)
	s.next.On("TrialBalance", s.ctx, s.query).Return(nil, boom).Once()

	_, err := s.cache.TrialBalance(s.ctx, s.query)
	s.ErrorIs(err, boom)
	s.client.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportCacheTestSuite) TestInvalidateBumpsVersion() {
	s.client.On("Incr", s.ctx, "ledger:reports:ent-us01:version").Return(nil).Once()
	s.NoError(s.cache.InvalidateEntity(s.ctx, "ent-us01"))

	s.client.On("Incr", s.ctx, "ledger:reports:ent-uk01:version").Return(errors.New("down")).Once()
	s.Error(s.cache.InvalidateEntity(s.ctx, "ent-uk01"))
	s.client.AssertExpectations(s.T())
}

func (s *ReportCacheTestSuite) TestAccountReportsPassThrough() {
	bal := &domain.AccountBalance{AccountID: "acc-1110"}
	s.next.On("AccountBalance", s.ctx, "acc-1110", "", (*time.Time)(nil)).Return(bal, nil).Once()

	got, err := s.cache.AccountBalance(s.ctx, "acc-1110", "", nil)
	s.Require().NoError(err)
	s.Same(bal, got)
	s.client.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}
