package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// statusForCode maps a ledger error code onto an HTTP status.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.CodeEntityNotFound, apperrors.CodeJournalNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidStatus, apperrors.CodeAlreadyReversed,
		apperrors.CodePeriodLocked, apperrors.CodeApprovalRequired:
		return http.StatusConflict
	case apperrors.CodeInternal:
		return http.StatusInternalServerError
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// respondWithResult writes a posting result. Failed results take the status of their first error.
func respondWithResult(c *gin.Context, res domain.PostingResult, successStatus int) {
	if res.Success {
		c.JSON(successStatus, res)
		return
	}
	status := http.StatusInternalServerError
	if first := res.FirstError(); first != nil {
		status = statusForCode(first.Code)
	}
	c.JSON(status, res)
}

// respondBindError rejects a malformed posting request with a VALIDATION_ERROR result.
func respondBindError(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, domain.Failed(domain.PostingError{
		Code:    apperrors.CodeValidation,
		Message: "Invalid request: " + err.Error(),
	}))
}

// respondError writes a read-path error, hiding internal details.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
