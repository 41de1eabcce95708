package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const internalErrorMessage = "An internal error occurred while processing the journal"

// rejection aborts a store transaction with a business failure rather than an internal one.
type rejection struct {
	err domain.PostingError
}

func (r *rejection) Error() string { return string(r.err.Code) + ": " + r.err.Message }

func reject(code apperrors.ErrorCode, format string, args ...any) error {
	return &rejection{err: domain.PostingError{Code: code, Message: fmt.Sprintf(format, args...)}}
}

// PostingServiceOption configures the posting service.
type PostingServiceOption func(*postingService)

// WithPeriodLockPolicy sets the policy consulted before posting.
func WithPeriodLockPolicy(p ledger.PeriodLockPolicy) PostingServiceOption {
	return func(s *postingService) { s.periodLocks = p }
}

// WithApprovalPolicy sets the policy deciding whether a journal needs approval.
func WithApprovalPolicy(p ledger.ApprovalPolicy) PostingServiceOption {
	return func(s *postingService) { s.approvals = p }
}

// WithReportInvalidator registers a hook notified after post and reverse commit.
func WithReportInvalidator(inv portssvc.ReportInvalidator) PostingServiceOption {
	return func(s *postingService) { s.invalidator = inv }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) PostingServiceOption {
	return func(s *postingService) { s.now = now }
}

// postingService creates, approves, posts and reverses journals.
type postingService struct {
	BaseService
	store       portsrepo.LedgerStore
	fx          *ledger.FxResolver
	numbers     *ledger.JournalNumberGenerator
	periodLocks ledger.PeriodLockPolicy
	approvals   ledger.ApprovalPolicy
	invalidator portssvc.ReportInvalidator
	now         func() time.Time
}

// NewPostingService creates the posting engine over store. Without options every period
// is open and no journal requires approval.
func NewPostingService(store portsrepo.LedgerStore, opts ...PostingServiceOption) portssvc.PostingSvcFacade {
	s := &postingService{
		store:       store,
		fx:          ledger.NewFxResolver(store),
		numbers:     ledger.NewJournalNumberGenerator(store),
		periodLocks: ledger.OpenPeriods{},
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) internalFailure(ctx context.Context, err error, msg string, keyvals ...any) domain.PostingResult {
	s.LogError(ctx, err, msg, keyvals...)
	return domain.Failed(domain.PostingError{Code: apperrors.CodeInternal, Message: internalErrorMessage})
}

// finishTx turns the error returned by RunInTx into a failed result, or nil on success.
func (s *postingService) finishTx(ctx context.Context, err error, msg string, keyvals ...any) *domain.PostingResult {
	if err == nil {
		return nil
	}
	var rej *rejection
	if errors.As(err, &rej) {
		res := domain.Failed(rej.err)
		return &res
	}
	res := s.internalFailure(ctx, err, msg, keyvals...)
	return &res
}

func (s *postingService) invalidateReports(ctx context.Context, entityID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateEntity(ctx, entityID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate cached reports", slog.String("entity_id", entityID))
	}
}

// CreateJournal validates req, converts foreign-currency lines, numbers the journal and
// stores it as DRAFT in every requested book.
func (s *postingService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) domain.PostingResult {
	journalDate, shapeErrs := validateCreateShape(req)
	if len(shapeErrs) > 0 {
		return domain.Failed(shapeErrs...)
	}

	entity, err := s.store.FindEntityByID(ctx, req.EntityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Failed(domain.PostingError{
				Code: apperrors.CodeEntityNotFound, Field: "entityID",
				Message: fmt.Sprintf("Entity %s not found", req.EntityID),
			})
		}
		return s.internalFailure(ctx, err, "Failed to load entity", slog.String("entity_id", req.EntityID))
	}

	bookIDs := distinct(req.BookIDs)
	books, err := s.store.FindBooksByIDs(ctx, entity.EntityID, bookIDs)
	if err != nil {
		return s.internalFailure(ctx, err, "Failed to load books", slog.String("entity_id", entity.EntityID))
	}
	if !allBooksUsable(books, bookIDs) {
		return domain.Failed(domain.PostingError{
			Code: apperrors.CodeInvalidBooks, Field: "bookIDs",
			Message: "One or more books are invalid, inactive, or belong to another entity",
		})
	}

	accountIDs := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accountIDs = distinct(accountIDs)
	accounts, err := s.store.FindAccountsByIDs(ctx, entity.EntityID, accountIDs)
	if err != nil {
		return s.internalFailure(ctx, err, "Failed to load accounts", slog.String("entity_id", entity.EntityID))
	}
	if !allAccountsUsable(accounts, accountIDs) {
		return domain.Failed(domain.PostingError{
			Code: apperrors.CodeInvalidAccounts, Field: "lines",
			Message: "One or more accounts are invalid, inactive, or belong to another entity",
		})
	}

	lines := make([]dto.CreateJournalLineRequest, len(req.Lines))
	for i, l := range req.Lines {
		if l.CurrencyCode == "" {
			l.CurrencyCode = entity.BaseCurrency
		}
		lines[i] = l
	}

	if res := ledger.ValidateBalance(balanceLinesOf(lines)); !res.Balanced {
		return domain.Failed(unbalancedError(res))
	}
	if lineErrs := validateLineSides(lines); len(lineErrs) > 0 {
		return domain.Failed(lineErrs...)
	}

	booked, warnings, err := s.convertLines(ctx, entity, lines, journalDate)
	if err != nil {
		if errors.Is(err, ledger.ErrRateNotFound) {
			return domain.Failed(domain.PostingError{Code: apperrors.CodeRateNotFound, Message: err.Error()})
		}
		return s.internalFailure(ctx, err, "Failed to convert journal lines", slog.String("entity_id", entity.EntityID))
	}
	if lineErrs := validateBookedSides(booked, entity.BaseCurrency); len(lineErrs) > 0 {
		return domain.Failed(lineErrs...)
	}

	now := s.now()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		EntityID:    entity.EntityID,
		JournalDate: journalDate,
		Period:      domain.PeriodOf(journalDate),
		JournalType: req.JournalType,
		Description: req.Description,
		Reference:   req.Reference,
		Source:      req.Source,
		SourceID:    req.SourceID,
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if journal.JournalType == "" {
		journal.JournalType = domain.Standard
	}
	if journal.Source == "" {
		journal.Source = domain.SourceManual
	}
	journal.Lines = fanOut(journal.JournalID, bookIDs, booked, now)

	if s.approvals != nil {
		need, err := s.approvals.RequiresApproval(ctx, journal)
		if err != nil {
			return s.internalFailure(ctx, err, "Failed to evaluate approval policy", slog.String("entity_id", entity.EntityID))
		}
		if need {
			warnings = append(warnings, domain.Warning{
				Code:     domain.WarningApprovalRequired,
				Message:  fmt.Sprintf("Journal total %s exceeds the approval threshold", ledger.JournalTotal(journal).String()),
				Severity: domain.SeverityMedium,
			})
		}
	}

	err = s.store.RunInTx(ctx, func(txCtx context.Context) error {
		number, seq, err := s.numbers.Next(txCtx, journal.EntityID, journal.Period)
		if err != nil {
			return err
		}
		journal.JournalNumber = number
		journal.Sequence = seq
		if err := s.store.InsertJournal(txCtx, journal); err != nil {
			return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
		}
		return s.store.InsertAuditLog(txCtx, domain.AuditLog{
			AuditID:   uuid.NewString(),
			EntityID:  journal.EntityID,
			JournalID: journal.JournalID,
			Action:    domain.AuditCreate,
			ActorID:   actorID,
			NewValues: map[string]any{"journalNumber": journal.JournalNumber, "status": string(domain.Draft)},
			CreatedAt: now,
		})
	})
	if failed := s.finishTx(ctx, err, "Failed to persist journal", slog.String("entity_id", journal.EntityID)); failed != nil {
		return *failed
	}

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber),
		slog.Int("books", len(bookIDs)))
	return domain.Succeeded(journal.JournalID, journal.JournalNumber, warnings)
}

// bookedLine is a request line after conversion into the base currency.
type bookedLine struct {
	req            dto.CreateJournalLineRequest
	debit, credit  decimal.Decimal
	amountOriginal decimal.Decimal
	fxRate         *decimal.Decimal
}

// convertLines converts every line not in the base currency. When rounding leaves a
// converted currency group unbalanced in base terms, the difference is absorbed by the
// largest line on the lighter side and reported as a warning.
func (s *postingService) convertLines(ctx context.Context, entity *domain.Entity, lines []dto.CreateJournalLineRequest, journalDate time.Time) ([]bookedLine, []domain.Warning, error) {
	precision := domain.DefaultCurrencyPrecision
	base, err := s.store.FindCurrencyByCode(ctx, entity.BaseCurrency)
	switch {
	case err == nil:
		precision = base.Precision
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, nil, fmt.Errorf("failed to load base currency %s: %w", entity.BaseCurrency, err)
	}

	booked := make([]bookedLine, len(lines))
	for i, l := range lines {
		amount := maxOf(l.Debit, l.Credit)
		b := bookedLine{req: l, debit: l.Debit, credit: l.Credit, amountOriginal: amount}
		if l.AmountOriginal != nil {
			b.amountOriginal = *l.AmountOriginal
		}
		if l.CurrencyCode != entity.BaseCurrency {
			conv, err := s.fx.Convert(ctx, amount, l.CurrencyCode, entity.BaseCurrency, journalDate, precision)
			if err != nil {
				return nil, nil, err
			}
			rate := conv.Rate
			b.fxRate = &rate
			b.amountOriginal = conv.Original
			if l.Debit.IsPositive() {
				b.debit, b.credit = conv.Amount, decimal.Zero
			} else {
				b.debit, b.credit = decimal.Zero, conv.Amount
			}
		}
		booked[i] = b
	}

	return booked, absorbRounding(booked, entity.BaseCurrency), nil
}

func absorbRounding(booked []bookedLine, baseCurrency string) []domain.Warning {
	groups := make(map[string][]int)
	for i, b := range booked {
		if b.fxRate != nil {
			groups[b.req.CurrencyCode] = append(groups[b.req.CurrencyCode], i)
		}
	}
	currencies := make([]string, 0, len(groups))
	for ccy := range groups {
		currencies = append(currencies, ccy)
	}
	sort.Strings(currencies)

	var warnings []domain.Warning
	for _, ccy := range currencies {
		diff := decimal.Zero
		for _, i := range groups[ccy] {
			diff = diff.Add(booked[i].debit).Sub(booked[i].credit)
		}
		if diff.IsZero() {
			continue
		}
		// diff > 0: debits heavier, grow the largest credit. diff < 0: grow the largest debit.
		target := -1
		for _, i := range groups[ccy] {
			onSide := booked[i].credit.IsPositive()
			if diff.IsNegative() {
				onSide = booked[i].debit.IsPositive()
			}
			if onSide && (target < 0 || maxOf(booked[i].debit, booked[i].credit).GreaterThan(maxOf(booked[target].debit, booked[target].credit))) {
				target = i
			}
		}
		if target < 0 {
			continue
		}
		if diff.IsPositive() {
			booked[target].credit = booked[target].credit.Add(diff)
		} else {
			booked[target].debit = booked[target].debit.Add(diff.Abs())
		}
		warnings = append(warnings, domain.Warning{
			Code: domain.WarningFxRounding,
			Message: fmt.Sprintf("%s lines differed by %s %s after conversion; line %d was adjusted",
				ccy, diff.Abs().String(), baseCurrency, booked[target].req.LineNumber),
			Severity: domain.SeverityLow,
		})
	}
	return warnings
}

func fanOut(journalID string, bookIDs []string, booked []bookedLine, now time.Time) []domain.JournalLine {
	out := make([]domain.JournalLine, 0, len(bookIDs)*len(booked))
	for _, bookID := range bookIDs {
		for _, b := range booked {
			out = append(out, domain.JournalLine{
				LineID:         uuid.NewString(),
				JournalID:      journalID,
				BookID:         bookID,
				LineNumber:     b.req.LineNumber,
				AccountID:      b.req.AccountID,
				Debit:          b.debit,
				Credit:         b.credit,
				CurrencyCode:   b.req.CurrencyCode,
				AmountOriginal: b.amountOriginal,
				FxRate:         b.fxRate,
				Dimensions:     b.req.Dimensions,
				SubledgerType:  b.req.SubledgerType,
				SubledgerID:    b.req.SubledgerID,
				Description:    b.req.Description,
				Reference:      b.req.Reference,
				CreatedAt:      now,
			})
		}
	}
	return out
}

func allBooksUsable(books []domain.LedgerBook, requested []string) bool {
	if len(books) != len(requested) {
		return false
	}
	for _, b := range books {
		if !b.IsActive {
			return false
		}
	}
	return true
}

func allAccountsUsable(accounts []domain.Account, requested []string) bool {
	if len(accounts) != len(requested) {
		return false
	}
	for _, a := range accounts {
		if !a.IsActive {
			return false
		}
	}
	return true
}

// ApproveJournal moves a DRAFT journal to APPROVED. The creator cannot approve their own journal.
func (s *postingService) ApproveJournal(ctx context.Context, journalID, actorID string) domain.PostingResult {
	var journal *domain.Journal
	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		journal, err = s.loadForUpdate(txCtx, journalID)
		if err != nil {
			return err
		}
		if journal.Status != domain.Draft {
			return reject(apperrors.CodeInvalidStatus, "Journal %s is %s; only DRAFT journals can be approved", journal.JournalNumber, journal.Status)
		}
		if journal.CreatedBy == actorID {
			return &rejection{err: validationError("actorID", "Journal %s cannot be approved by its creator", journal.JournalNumber)}
		}
		now := s.now()
		if err := s.store.TransitionJournalStatus(txCtx, domain.StatusTransition{
			JournalID:  journal.JournalID,
			From:       []domain.JournalStatus{domain.Draft},
			To:         domain.Approved,
			ApprovedAt: &now,
			ApprovedBy: &actorID,
			UpdatedAt:  now,
			UpdatedBy:  actorID,
		}); err != nil {
			return s.transitionFailure(err, journal)
		}
		return s.store.InsertAuditLog(txCtx, domain.AuditLog{
			AuditID:   uuid.NewString(),
			EntityID:  journal.EntityID,
			JournalID: journal.JournalID,
			Action:    domain.AuditApprove,
			ActorID:   actorID,
			OldValues: map[string]any{"status": string(domain.Draft)},
			NewValues: map[string]any{"status": string(domain.Approved), "approvedAt": now},
			CreatedAt: now,
		})
	})
	if failed := s.finishTx(ctx, err, "Failed to approve journal", slog.String("journal_id", journalID)); failed != nil {
		return *failed
	}
	s.LogInfo(ctx, "Journal approved", slog.String("journal_id", journal.JournalID))
	return domain.Succeeded(journal.JournalID, journal.JournalNumber, nil)
}

// PostJournal moves a DRAFT or APPROVED journal to POSTED after the period lock, approval
// and balance checks that opts does not skip.
func (s *postingService) PostJournal(ctx context.Context, journalID, actorID string, opts domain.PostOptions) domain.PostingResult {
	var journal *domain.Journal
	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		journal, err = s.loadForUpdate(txCtx, journalID)
		if err != nil {
			return err
		}
		if journal.Status != domain.Draft && journal.Status != domain.Approved {
			return reject(apperrors.CodeInvalidStatus, "Journal %s is %s; only DRAFT or APPROVED journals can be posted", journal.JournalNumber, journal.Status)
		}

		if !opts.SkipPeriodLockCheck {
			for _, bookID := range journal.BookIDs() {
				locked, err := s.periodLocks.IsLocked(txCtx, journal.EntityID, bookID, journal.Period)
				if err != nil {
					return fmt.Errorf("failed to evaluate period lock: %w", err)
				}
				if locked {
					return reject(apperrors.CodePeriodLocked, "Period %s is locked for book %s", journal.Period, bookID)
				}
			}
		}

		if !opts.SkipApprovalCheck && journal.Status != domain.Approved && s.approvals != nil {
			need, err := s.approvals.RequiresApproval(txCtx, *journal)
			if err != nil {
				return fmt.Errorf("failed to evaluate approval policy: %w", err)
			}
			if need {
				return reject(apperrors.CodeApprovalRequired, "Journal %s requires approval before posting", journal.JournalNumber)
			}
		}

		if perr := validatePersistedSides(journal.Lines); perr != nil {
			return &rejection{err: *perr}
		}

		if !opts.SkipBalanceCheck {
			if res := ledger.ValidateJournalBooks(*journal); !res.Balanced {
				return &rejection{err: unbalancedError(res)}
			}
		}

		now := s.now()
		postedBy := actorID
		if opts.BypassActor != "" {
			postedBy = opts.BypassActor
		}
		if err := s.store.TransitionJournalStatus(txCtx, domain.StatusTransition{
			JournalID: journal.JournalID,
			From:      []domain.JournalStatus{domain.Draft, domain.Approved},
			To:        domain.Posted,
			PostedAt:  &now,
			PostedBy:  &postedBy,
			UpdatedAt: now,
			UpdatedBy: actorID,
		}); err != nil {
			return s.transitionFailure(err, journal)
		}
		return s.store.InsertAuditLog(txCtx, domain.AuditLog{
			AuditID:   uuid.NewString(),
			EntityID:  journal.EntityID,
			JournalID: journal.JournalID,
			Action:    domain.AuditPost,
			ActorID:   actorID,
			OldValues: map[string]any{"status": string(journal.Status)},
			NewValues: map[string]any{"status": string(domain.Posted), "postedAt": now, "postedBy": postedBy},
			CreatedAt: now,
		})
	})
	if failed := s.finishTx(ctx, err, "Failed to post journal", slog.String("journal_id", journalID)); failed != nil {
		return *failed
	}

	s.invalidateReports(ctx, journal.EntityID)
	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journal.JournalID), slog.String("journal_number", journal.JournalNumber))
	return domain.Succeeded(journal.JournalID, journal.JournalNumber, nil)
}

// ReverseJournal books a POSTED mirror of a POSTED journal in the current period and marks
// the original REVERSED.
func (s *postingService) ReverseJournal(ctx context.Context, journalID, actorID, reason string) domain.PostingResult {
	var original *domain.Journal
	var reversal domain.Journal
	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		original, err = s.loadForUpdate(txCtx, journalID)
		if err != nil {
			return err
		}

		existing, err := s.store.FindReversalOf(txCtx, original.JournalID)
		switch {
		case err == nil:
			return reject(apperrors.CodeAlreadyReversed, "Journal %s was already reversed by %s", original.JournalNumber, existing.JournalNumber)
		case !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to look up existing reversal: %w", err)
		}
		if original.Status != domain.Posted {
			return reject(apperrors.CodeInvalidStatus, "Journal %s is %s; only POSTED journals can be reversed", original.JournalNumber, original.Status)
		}
		if original.ReversalOfID != nil {
			return reject(apperrors.CodeInvalidStatus, "Journal %s is itself a reversal and cannot be reversed", original.JournalNumber)
		}

		now := s.now()
		journalDate := now.Truncate(24 * time.Hour)
		reversal = domain.Journal{
			JournalID:    uuid.NewString(),
			EntityID:     original.EntityID,
			JournalDate:  journalDate,
			Period:       domain.PeriodOf(journalDate),
			JournalType:  domain.Reversing,
			Description:  fmt.Sprintf("Reversal of %s: %s", original.JournalNumber, reason),
			Reference:    original.JournalNumber,
			Source:       domain.SourceReversal,
			SourceID:     &original.JournalID,
			Status:       domain.Posted,
			ReversalOfID: &original.JournalID,
			PostedAt:     &now,
			PostedBy:     &actorID,
			AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
		}
		reversal.Lines = mirrorLines(*original, reversal.JournalID, now)

		number, seq, err := s.numbers.Next(txCtx, reversal.EntityID, reversal.Period)
		if err != nil {
			return err
		}
		reversal.JournalNumber = number
		reversal.Sequence = seq

		if err := s.store.InsertJournal(txCtx, reversal); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return reject(apperrors.CodeAlreadyReversed, "Journal %s was already reversed", original.JournalNumber)
			}
			return fmt.Errorf("failed to insert reversal journal: %w", err)
		}
		if err := s.store.TransitionJournalStatus(txCtx, domain.StatusTransition{
			JournalID: original.JournalID,
			From:      []domain.JournalStatus{domain.Posted},
			To:        domain.Reversed,
			UpdatedAt: now,
			UpdatedBy: actorID,
		}); err != nil {
			return s.transitionFailure(err, original)
		}
		return s.store.InsertAuditLog(txCtx, domain.AuditLog{
			AuditID:   uuid.NewString(),
			EntityID:  original.EntityID,
			JournalID: original.JournalID,
			Action:    domain.AuditReverse,
			ActorID:   actorID,
			OldValues: map[string]any{"status": string(domain.Posted)},
			NewValues: map[string]any{
				"status":         string(domain.Reversed),
				"reversalID":     reversal.JournalID,
				"reversalNumber": reversal.JournalNumber,
				"reason":         reason,
			},
			CreatedAt: now,
		})
	})
	if failed := s.finishTx(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID)); failed != nil {
		return *failed
	}

	s.invalidateReports(ctx, original.EntityID)
	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", original.JournalID),
		slog.String("reversal_id", reversal.JournalID),
		slog.String("reversal_number", reversal.JournalNumber))
	return domain.Succeeded(reversal.JournalID, reversal.JournalNumber, nil)
}

// mirrorLines swaps debit and credit of every logical line and re-expands them per book.
func mirrorLines(original domain.Journal, reversalID string, now time.Time) []domain.JournalLine {
	logical := original.LogicalLines()
	sort.SliceStable(logical, func(i, j int) bool { return logical[i].LineNumber < logical[j].LineNumber })

	var out []domain.JournalLine
	for _, bookID := range original.BookIDs() {
		for _, l := range logical {
			m := l
			m.LineID = uuid.NewString()
			m.JournalID = reversalID
			m.BookID = bookID
			m.Debit, m.Credit = l.Credit, l.Debit
			m.CreatedAt = now
			out = append(out, m)
		}
	}
	return out
}

func (s *postingService) loadForUpdate(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.store.FindJournalByIDForUpdate(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, reject(apperrors.CodeJournalNotFound, "Journal %s not found", journalID)
		}
		return nil, fmt.Errorf("failed to load journal %s: %w", journalID, err)
	}
	return journal, nil
}

func (s *postingService) transitionFailure(err error, journal *domain.Journal) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return reject(apperrors.CodeInvalidStatus, "Journal %s changed status concurrently", journal.JournalNumber)
	}
	return fmt.Errorf("failed to update journal %s status: %w", journal.JournalID, err)
}

// GetJournal returns a journal with all of its lines.
func (s *postingService) GetJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.store.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals returns a page of journal headers for an entity.
func (s *postingService) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, *string, error) {
	if filter.EntityID == "" {
		return nil, nil, apperrors.NewValidationError("entityID is required")
	}
	if filter.Period != "" && !domain.ValidPeriod(filter.Period) {
		return nil, nil, apperrors.NewValidationError("period must be YYYY-MM")
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	journals, next, err := s.store.ListJournals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("entity_id", filter.EntityID))
		return nil, nil, err
	}
	return journals, next, nil
}

// ListJournalAuditLogs returns the audit trail of a journal, oldest first.
func (s *postingService) ListJournalAuditLogs(ctx context.Context, journalID string) ([]domain.AuditLog, error) {
	return s.store.ListAuditLogs(ctx, journalID)
}
