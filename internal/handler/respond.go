package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type conflictResponse struct {
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Interviews []domain.Interview `json:"interviews,omitempty"`
	BusyBlocks []domain.BusyBlock `json:"busy_blocks,omitempty"`
}

// respondError maps domain failures onto stable HTTP statuses. Conflicts
// carry the colliding records so clients can render them.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: validationErr.Reason,
			Field:   validationErr.Field,
		})
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, conflictResponse{
			Error:      "conflict",
			Message:    "the requested interval collides with existing commitments",
			Interviews: conflictErr.Interviews,
			BusyBlocks: conflictErr.BusyBlocks,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInterviewerNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrInterviewNotFound),
		errors.Is(err, domain.ErrBusyBlockNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrTransactionAborted):
		c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error:   "transaction_aborted",
			Message: "the batch was rolled back, resubmit",
		})
	case errors.Is(err, domain.ErrNoMatch):
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "no_match",
			Message: "no interviewer shares an open slot with the applicant",
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
