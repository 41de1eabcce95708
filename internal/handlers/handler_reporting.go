package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/account-ledger", h.getAccountLedger)
		reportingGroup.GET("/account-balance", h.getAccountBalance)
	}
}

// bindReportQuery parses the shared statement parameters. It writes a 400 and returns false on failure.
func bindReportQuery(c *gin.Context, logger *slog.Logger) (domain.TrialBalanceQuery, bool) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.TrialBalanceQuery{}, false
	}
	asOf, err := dto.ParseDate(params.AsOf, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return domain.TrialBalanceQuery{}, false
	}
	return domain.TrialBalanceQuery{
		EntityID:           params.EntityID,
		BookID:             params.BookID,
		Period:             params.Period,
		AsOf:               asOf,
		IncludeSubAccounts: params.IncludeSubAccounts,
	}, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Aggregates posted lines per account for an entity, optionally scoped to a book and a period or as-of date
// @Tags reports
// @Produce json
// @Param entityID query string true "Entity ID"
// @Param bookID query string false "Book ID (all books when empty)"
// @Param period query string false "Period (YYYY-MM), takes precedence over asOf"
// @Param asOf query string false "Report date (YYYY-MM-DD)"
// @Param includeSubAccounts query bool false "Roll descendants into parent rows"
// @Success 200 {object} domain.TrialBalance
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, ok := bindReportQuery(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger.With(slog.String("entity_id", q.EntityID)), "Failed to generate trial balance", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Tags reports
// @Produce json
// @Param entityID query string true "Entity ID"
// @Param bookID query string false "Book ID"
// @Param period query string false "Period (YYYY-MM)"
// @Param asOf query string false "Report date (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, ok := bindReportQuery(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger.With(slog.String("entity_id", q.EntityID)), "Failed to generate income statement", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Tags reports
// @Produce json
// @Param entityID query string true "Entity ID"
// @Param bookID query string false "Book ID"
// @Param period query string false "Period (YYYY-MM)"
// @Param asOf query string false "Report date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheet
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, ok := bindReportQuery(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger.With(slog.String("entity_id", q.EntityID)), "Failed to generate balance sheet", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Chronological posted lines of one account with running balances
// @Tags reports
// @Produce json
// @Param accountID query string true "Account ID"
// @Param bookID query string false "Book ID"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} domain.AccountLedger
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/account-ledger [get]
func (h *reportingHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid account ledger query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, err := dto.ParseDate(params.From, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseDate(params.To, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.AccountLedger(c.Request.Context(), domain.AccountLedgerQuery{
		AccountID: params.AccountID,
		BookID:    params.BookID,
		From:      from,
		To:        to,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", params.AccountID)), "Failed to generate account ledger", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getAccountBalance godoc
// @Summary Account balance
// @Tags reports
// @Produce json
// @Param accountID query string true "Account ID"
// @Param bookID query string false "Book ID (all books when empty)"
// @Param asOf query string false "Balance date (YYYY-MM-DD)"
// @Success 200 {object} domain.AccountBalance
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/account-balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := dto.ParseDate(params.AsOf, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), params.AccountID, params.BookID, asOf)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", params.AccountID)), "Failed to compute account balance", err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
