package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/match"
)

type MatchHandler struct {
	scheduler *match.AutoScheduler
}

func NewMatchHandler(scheduler *match.AutoScheduler) *MatchHandler {
	return &MatchHandler{scheduler: scheduler}
}

// HandleReset soft-matches every unassigned interviewing application.
func (h *MatchHandler) HandleReset(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.scheduler.ResetUnmatched(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type scheduleRequest struct {
	ApplicantID    string `json:"applicant_id" binding:"required"`
	PreferredTeams []struct {
		Team     string `json:"team"`
		Interest string `json:"interest"`
	} `json:"preferred_teams"`
	AvailableSlots []domain.GridToken `json:"available_slots"`
	AutoCreate     bool               `json:"auto_create"`
	Location       string             `json:"location"`
}

type scheduleResponse struct {
	InterviewerID string            `json:"interviewer_id"`
	Time          string            `json:"time"`
	Score         float64           `json:"score"`
	Interview     *domain.Interview `json:"interview,omitempty"`
}

// HandleSchedule matches one applicant to the best interviewer. With
// auto_create the match is realized as a conflict-checked booking.
func (h *MatchHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	prefs := make([]domain.TeamPreference, 0, len(req.PreferredTeams))
	for _, p := range req.PreferredTeams {
		team, err := domain.ParseTeam(p.Team)
		if err != nil {
			respondError(c, err)
			return
		}
		interest, err := domain.ParseInterestLevel(p.Interest)
		if err != nil {
			respondError(c, err)
			return
		}
		prefs = append(prefs, domain.TeamPreference{Team: team, Interest: interest})
	}

	result, err := h.scheduler.ScheduleOne(ctx, match.ScheduleRequest{
		ApplicantID:    req.ApplicantID,
		PreferredTeams: prefs,
		AvailableSlots: req.AvailableSlots,
		AutoCreate:     req.AutoCreate,
		Location:       req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{
		InterviewerID: result.Candidate.Interviewer.ID,
		Time:          result.Time.UTC().Format(time.RFC3339),
		Score:         result.Candidate.TotalScore,
		Interview:     result.Interview,
	})
}
