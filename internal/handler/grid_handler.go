package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
	"github.com/campuscrew/interview-scheduling/internal/service/match"
)

type GridHandler struct {
	codec     *grid.Codec
	scheduler *match.AutoScheduler
}

func NewGridHandler(codec *grid.Codec, scheduler *match.AutoScheduler) *GridHandler {
	return &GridHandler{codec: codec, scheduler: scheduler}
}

type gridResponse struct {
	Timezone string     `json:"timezone"`
	Grid     *grid.Grid `json:"grid"`
}

// HandleGetGrid renders the full season universe as a selection grid in the
// requested timezone.
func (h *GridHandler) HandleGetGrid(c *gin.Context) {
	tz := c.DefaultQuery("tz", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		respondError(c, &domain.ValidationError{Field: "tz", Reason: "unknown timezone"})
		return
	}

	g, err := grid.NewBuilder(loc).Build(h.codec.Universe())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gridResponse{Timezone: tz, Grid: g})
}

type slotsResponse struct {
	InterviewerID string             `json:"interviewer_id"`
	Date          string             `json:"date"`
	Tokens        []domain.GridToken `json:"tokens"`
}

// HandleGetInterviewerSlots returns an interviewer's bookable tokens for one
// calendar date in the interviewer's own timezone.
func (h *GridHandler) HandleGetInterviewerSlots(c *gin.Context) {
	ctx := c.Request.Context()
	interviewerID := c.Param("id")

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(c, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"})
		return
	}

	tokens, err := h.scheduler.FindAvailableSlots(ctx, interviewerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slotsResponse{
		InterviewerID: interviewerID,
		Date:          dateStr,
		Tokens:        tokens,
	})
}
