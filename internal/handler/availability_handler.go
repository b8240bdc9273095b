package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/availability"
)

type AvailabilityHandler struct {
	availabilityService *availability.Service
}

func NewAvailabilityHandler(availabilityService *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

type submitAvailabilityRequest struct {
	Tokens []domain.GridToken `json:"tokens" binding:"required"`
}

type availabilityResponse struct {
	Tokens []domain.GridToken `json:"tokens"`
	Count  int                `json:"count"`
}

// HandleSubmitApplicantAvailability replaces an applicant's full slot set.
func (h *AvailabilityHandler) HandleSubmitApplicantAvailability(c *gin.Context) {
	ctx := c.Request.Context()
	applicantID := c.Param("id")

	var req submitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	if err := h.availabilityService.SubmitApplicantAvailability(ctx, applicantID, req.Tokens); err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.availabilityService.GetApplicantAvailability(ctx, applicantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availabilityResponse{Tokens: tokens, Count: len(tokens)})
}

// HandleReplaceInterviewerAvailability replaces an interviewer's full slot set.
func (h *AvailabilityHandler) HandleReplaceInterviewerAvailability(c *gin.Context) {
	ctx := c.Request.Context()
	interviewerID := c.Param("id")

	var req submitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	if err := h.availabilityService.ReplaceInterviewerAvailability(ctx, interviewerID, req.Tokens); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availabilityResponse{Tokens: req.Tokens, Count: len(req.Tokens)})
}
