package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/busytime"
)

type BusyTimeHandler struct {
	processor *busytime.Processor
}

func NewBusyTimeHandler(processor *busytime.Processor) *BusyTimeHandler {
	return &BusyTimeHandler{processor: processor}
}

type batchOperationRequest struct {
	Kind    string    `json:"kind" binding:"required"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Reason  string    `json:"reason"`
	BlockID string    `json:"block_id"`
}

type batchRequest struct {
	Operations []batchOperationRequest `json:"operations" binding:"required"`
}

type batchItemErrorResponse struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type batchResponse struct {
	Created []domain.BusyBlock       `json:"created"`
	Deleted []string                 `json:"deleted"`
	Errors  []batchItemErrorResponse `json:"errors"`
}

// HandleBatch applies a heterogeneous set of busy-block edits for one
// interviewer in a single transaction. Per-item failures are reported in the
// response; a store failure returns 503 and nothing is applied.
func (h *BusyTimeHandler) HandleBatch(c *gin.Context) {
	ctx := c.Request.Context()
	interviewerID := c.Param("id")

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	ops := make([]busytime.Operation, 0, len(req.Operations))
	for _, op := range req.Operations {
		ops = append(ops, busytime.Operation{
			Kind:          busytime.OperationKind(op.Kind),
			InterviewerID: interviewerID,
			Interval:      domain.TimeInterval{Start: op.Start, End: op.End},
			Reason:        op.Reason,
			BlockID:       op.BlockID,
		})
	}

	result, err := h.processor.ProcessBatch(ctx, ops)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := batchResponse{
		Created: result.Created,
		Deleted: result.Deleted,
		Errors:  make([]batchItemErrorResponse, 0, len(result.Errors)),
	}
	if resp.Created == nil {
		resp.Created = []domain.BusyBlock{}
	}
	if resp.Deleted == nil {
		resp.Deleted = []string{}
	}
	for _, itemErr := range result.Errors {
		resp.Errors = append(resp.Errors, batchItemErrorResponse{
			Index:   itemErr.Index,
			Kind:    itemErr.Kind,
			Message: itemErr.Err.Error(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

type toggleSlotRequest struct {
	Date   string `json:"date" binding:"required"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

type toggleRequest struct {
	Timezone string              `json:"timezone"`
	MarkBusy bool                `json:"mark_busy"`
	Slots    []toggleSlotRequest `json:"slots" binding:"required"`
}

// HandleToggle bulk-marks 15-minute slots busy or available.
func (h *BusyTimeHandler) HandleToggle(c *gin.Context) {
	ctx := c.Request.Context()
	interviewerID := c.Param("id")

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	loc := time.UTC
	if req.Timezone != "" {
		parsed, err := time.LoadLocation(req.Timezone)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "timezone", Reason: "unknown timezone"})
			return
		}
		loc = parsed
	}

	slots := make([]busytime.SlotRef, 0, len(req.Slots))
	for _, s := range req.Slots {
		date, err := time.ParseInLocation("2006-01-02", s.Date, loc)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"})
			return
		}
		slots = append(slots, busytime.SlotRef{Date: date, Hour: s.Hour, Minute: s.Minute})
	}

	result, err := h.processor.ToggleSlots(ctx, interviewerID, loc, slots, req.MarkBusy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
