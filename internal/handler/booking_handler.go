package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/booking"
)

type BookingHandler struct {
	bookingService *booking.Service
}

func NewBookingHandler(bookingService *booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type createInterviewRequest struct {
	InterviewerID   string    `json:"interviewer_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	Team            string    `json:"team"`
	ApplicantID     string    `json:"applicant_id"`
	PlaceholderName string    `json:"placeholder_name"`
}

// HandleCreateInterview books a realized interview, either for an applicant
// or as a named placeholder reservation.
func (h *BookingHandler) HandleCreateInterview(c *gin.Context) {
	ctx := c.Request.Context()

	var req createInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	var team domain.Team
	if req.Team != "" {
		parsed, err := domain.ParseTeam(req.Team)
		if err != nil {
			respondError(c, err)
			return
		}
		team = parsed
	}

	interview, err := h.bookingService.Book(ctx, booking.Request{
		InterviewerID:   req.InterviewerID,
		Start:           req.Start,
		Location:        req.Location,
		Team:            team,
		ApplicantID:     req.ApplicantID,
		PlaceholderName: req.PlaceholderName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interview)
}

// HandleCancelInterview deletes a booking and detaches it from its
// application.
func (h *BookingHandler) HandleCancelInterview(c *gin.Context) {
	ctx := c.Request.Context()
	interviewID := c.Param("id")

	if err := h.bookingService.Cancel(ctx, interviewID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateInterviewRequest struct {
	Location *string `json:"location"`
	Team     *string `json:"team"`
}

// HandleUpdateInterview edits the administrative fields of a booking. The
// time and participants are immutable; rebook to change them.
func (h *BookingHandler) HandleUpdateInterview(c *gin.Context) {
	ctx := c.Request.Context()
	interviewID := c.Param("id")

	var req updateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	var team *domain.Team
	if req.Team != nil {
		parsed, err := domain.ParseTeam(*req.Team)
		if err != nil {
			respondError(c, err)
			return
		}
		team = &parsed
	}

	interview, err := h.bookingService.UpdateDetails(ctx, interviewID, req.Location, team)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}
