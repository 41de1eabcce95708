package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the journal lifecycle.
type ledgerHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ps portssvc.PostingSvcFacade) *ledgerHandler {
	return &ledgerHandler{postingService: ps}
}

// registerLedgerRoutes registers the /ledger/journals routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ps portssvc.PostingSvcFacade) {
	h := newLedgerHandler(ps)

	journals := rg.Group("/ledger/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.GET("/:journalID/audit", h.listJournalAudit)
		journals.POST("/:journalID/approve", h.approveJournal)
		journals.POST("/:journalID/post", h.postJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
	}
}

func actorOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return actorID, true
}

// createJournal godoc
// @Summary Create a draft journal
// @Description Validates and stores a DRAFT journal across one or more books
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal to create"
// @Success 201 {object} domain.PostingResult
// @Failure 400 {object} domain.PostingResult "Invalid request"
// @Failure 404 {object} domain.PostingResult "Entity not found"
// @Failure 422 {object} domain.PostingResult "Journal rejected"
// @Failure 500 {object} domain.PostingResult "Internal error"
// @Security BearerAuth
// @Router /ledger/journals [post]
func (h *ledgerHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "CreateJournal", err)
		return
	}
	actorID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	res := h.postingService.CreateJournal(c.Request.Context(), req, actorID)
	if res.Success {
		logger.Info("Journal created", slog.String("journal_id", res.JournalID), slog.String("journal_number", res.JournalNumber))
	}
	respondWithResult(c, res, http.StatusCreated)
}

// listJournals godoc
// @Summary List journals
// @Description Lists journal headers of an entity, newest first
// @Tags journals
// @Produce json
// @Param entityID query string true "Entity ID"
// @Param status query string false "Journal status"
// @Param period query string false "Period (YYYY-MM)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /ledger/journals [get]
func (h *ledgerHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid journal list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.JournalFilter{
		EntityID: params.EntityID,
		Status:   domain.JournalStatus(params.Status),
		Period:   params.Period,
		Limit:    params.Limit,
	}
	if params.NextToken != "" {
		filter.NextToken = &params.NextToken
	}

	journals, next, err := h.postingService.ListJournals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, "Failed to list journals", err)
		return
	}
	c.JSON(http.StatusOK, mapping.ToListJournalsResponse(journals, next))
}

// getJournal godoc
// @Summary Get a journal
// @Description Returns a journal header with its lines and books
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /ledger/journals/{journalID} [get]
func (h *ledgerHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.postingService.GetJournal(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), "Failed to retrieve journal", err)
		return
	}
	c.JSON(http.StatusOK, mapping.ToJournalResponse(*journal))
}

// listJournalAudit godoc
// @Summary Journal audit trail
// @Description Lists the audit entries recorded for a journal, oldest first
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {array} domain.AuditLog
// @Failure 500 {object} map[string]string "Failed to retrieve audit trail"
// @Security BearerAuth
// @Router /ledger/journals/{journalID}/audit [get]
func (h *ledgerHandler) listJournalAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	logs, err := h.postingService.ListJournalAuditLogs(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), "Failed to retrieve audit trail", err)
		return
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	c.JSON(http.StatusOK, logs)
}

// approveJournal godoc
// @Summary Approve a draft journal
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} domain.PostingResult
// @Failure 404 {object} domain.PostingResult "Journal not found"
// @Failure 409 {object} domain.PostingResult "Journal is not a draft"
// @Security BearerAuth
// @Router /ledger/journals/{journalID}/approve [post]
func (h *ledgerHandler) approveJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}
	respondWithResult(c, h.postingService.ApproveJournal(c.Request.Context(), c.Param("journalID"), actorID), http.StatusOK)
}

// postJournal godoc
// @Summary Post a journal
// @Description Moves a DRAFT or APPROVED journal to POSTED
// @Tags journals
// @Accept json
// @Produce json
// @Param journalID path string true "Journal ID"
// @Param options body dto.PostJournalRequest false "Check overrides"
// @Success 200 {object} domain.PostingResult
// @Failure 404 {object} domain.PostingResult "Journal not found"
// @Failure 409 {object} domain.PostingResult "Status, period lock or approval conflict"
// @Failure 422 {object} domain.PostingResult "Journal unbalanced"
// @Security BearerAuth
// @Router /ledger/journals/{journalID}/post [post]
func (h *ledgerHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, "PostJournal", err)
			return
		}
	}
	actorID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	journalID := c.Param("journalID")
	res := h.postingService.PostJournal(c.Request.Context(), journalID, actorID, req.ToOptions())
	if res.Success {
		logger.Info("Journal posted", slog.String("journal_id", journalID))
	}
	respondWithResult(c, res, http.StatusOK)
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a mirror journal and marks the original REVERSED
// @Tags journals
// @Accept json
// @Produce json
// @Param journalID path string true "Journal ID"
// @Param reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} domain.PostingResult
// @Failure 400 {object} domain.PostingResult "Missing reason"
// @Failure 404 {object} domain.PostingResult "Journal not found"
// @Failure 409 {object} domain.PostingResult "Journal not posted or already reversed"
// @Security BearerAuth
// @Router /ledger/journals/{journalID}/reverse [post]
func (h *ledgerHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "ReverseJournal", err)
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, domain.Failed(domain.PostingError{
			Code: apperrors.CodeValidation, Message: "reason is required", Field: "reason",
		}))
		return
	}
	actorID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	journalID := c.Param("journalID")
	res := h.postingService.ReverseJournal(c.Request.Context(), journalID, actorID, req.Reason)
	if res.Success {
		logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversal_id", res.JournalID))
	}
	respondWithResult(c, res, http.StatusCreated)
}
