package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *CohortStorage
}

func NewHandler(storage *CohortStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totalInterviewers := 0
	totalApplicants := 0
	for _, sc := range req.Cohorts {
		startDate, err := time.Parse("2006-01-02", sc.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date: " + sc.StartDate})
			return
		}

		h.storage.AddCohort(runID, &Cohort{
			StartDate:    startDate.UTC(),
			Days:         sc.Days,
			Interviewers: sc.Interviewers,
			Applicants:   sc.Applicants,
			SlotsPerDay:  sc.SlotsPerDay,
			Teams:        sc.Teams,
		})

		totalInterviewers += sc.Interviewers
		totalApplicants += sc.Applicants
	}

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("cohort_count", len(req.Cohorts)),
		slog.Int("interviewer_count", totalInterviewers),
		slog.Int("applicant_count", totalApplicants),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":            "seeded",
		"run_id":            runID,
		"cohort_count":      len(req.Cohorts),
		"interviewer_count": totalInterviewers,
		"applicant_count":   totalApplicants,
	})
}

// GET /api/v1/interviewers?run_id=...
func (h *Handler) HandleGetInterviewers(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	interviewers := h.storage.GetInterviewers(runID)

	slog.Debug("get interviewers",
		slog.String("run_id", runID),
		slog.Int("count", len(interviewers)),
	)

	c.JSON(http.StatusOK, InterviewersResponse{
		Interviewers: interviewers,
		Count:        len(interviewers),
	})
}

// GET /api/v1/applicants?run_id=...
func (h *Handler) HandleGetApplicants(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	applicants := h.storage.GetApplicants(runID)

	slog.Debug("get applicants",
		slog.String("run_id", runID),
		slog.Int("count", len(applicants)),
	)

	c.JSON(http.StatusOK, ApplicantsResponse{
		Applicants: applicants,
		Count:      len(applicants),
	})
}
