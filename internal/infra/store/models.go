package store

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type interviewerModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:255;not null"`
	Timezone    string `gorm:"size:64"`
	TargetTeams string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (interviewerModel) TableName() string { return "interviewers" }

type applicationModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	Name           string `gorm:"size:255;not null"`
	Status         string `gorm:"size:32;not null;index"`
	PreferredTeams string `gorm:"type:text"`

	AssignmentPhase string    `gorm:"size:16;not null;default:none;index"`
	InterviewerID   string    `gorm:"size:64;index"`
	ProposedTime    time.Time `gorm:""`
	ProposedScore   float64
	InterviewID     string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (applicationModel) TableName() string { return "applications" }

type interviewModel struct {
	ID              string    `gorm:"primaryKey;size:64"`
	ApplicantID     string    `gorm:"size:64;index"`
	InterviewerID   string    `gorm:"size:64;not null;index:idx_interviews_interviewer_window"`
	StartAt         time.Time `gorm:"not null;index:idx_interviews_interviewer_window"`
	EndAt           time.Time `gorm:"not null"`
	Location        string    `gorm:"size:255"`
	Team            string    `gorm:"size:32"`
	IsPlaceholder   bool      `gorm:"not null;default:false"`
	PlaceholderName string    `gorm:"size:255"`
	CreatedAt       time.Time
}

func (interviewModel) TableName() string { return "interviews" }

type busyBlockModel struct {
	ID            string    `gorm:"primaryKey;size:64"`
	InterviewerID string    `gorm:"size:64;not null;index:idx_busy_blocks_interviewer_window"`
	StartAt       time.Time `gorm:"not null;index:idx_busy_blocks_interviewer_window"`
	EndAt         time.Time `gorm:"not null"`
	Reason        string    `gorm:"size:255"`
	CreatedAt     time.Time
}

func (busyBlockModel) TableName() string { return "busy_blocks" }

type applicantSlotModel struct {
	ApplicantID string `gorm:"primaryKey;size:64"`
	SlotKey     string `gorm:"primaryKey;size:32"`
	CreatedAt   time.Time
}

func (applicantSlotModel) TableName() string { return "applicant_slots" }

type interviewerSlotModel struct {
	InterviewerID string `gorm:"primaryKey;size:64"`
	SlotKey       string `gorm:"primaryKey;size:32"`
	SelectedAt    time.Time
}

func (interviewerSlotModel) TableName() string { return "interviewer_slots" }

// Migrate creates or updates the schema for every scheduling table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&interviewerModel{},
		&applicationModel{},
		&interviewModel{},
		&busyBlockModel{},
		&applicantSlotModel{},
		&interviewerSlotModel{},
	)
}

func (m *interviewerModel) toDomain() (*domain.Interviewer, error) {
	var teams []domain.Team
	if m.TargetTeams != "" {
		if err := json.Unmarshal([]byte(m.TargetTeams), &teams); err != nil {
			return nil, err
		}
	}
	return &domain.Interviewer{
		ID:          m.ID,
		Name:        m.Name,
		Timezone:    m.Timezone,
		TargetTeams: teams,
	}, nil
}

func interviewerFromDomain(iv *domain.Interviewer) (*interviewerModel, error) {
	teams, err := json.Marshal(iv.TargetTeams)
	if err != nil {
		return nil, err
	}
	return &interviewerModel{
		ID:          iv.ID,
		Name:        iv.Name,
		Timezone:    iv.Timezone,
		TargetTeams: string(teams),
	}, nil
}

func (m *applicationModel) toDomain() (*domain.Application, error) {
	var prefs []domain.TeamPreference
	if m.PreferredTeams != "" {
		if err := json.Unmarshal([]byte(m.PreferredTeams), &prefs); err != nil {
			return nil, err
		}
	}
	phase := domain.AssignmentPhase(m.AssignmentPhase)
	if phase == "" {
		phase = domain.AssignmentNone
	}
	return &domain.Application{
		ID:             m.ID,
		Name:           m.Name,
		Status:         domain.ApplicationStatus(m.Status),
		PreferredTeams: prefs,
		Assignment: domain.Assignment{
			Phase:         phase,
			InterviewerID: m.InterviewerID,
			ProposedTime:  m.ProposedTime,
			ProposedScore: m.ProposedScore,
			InterviewID:   m.InterviewID,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func applicationFromDomain(app *domain.Application) (*applicationModel, error) {
	prefs, err := json.Marshal(app.PreferredTeams)
	if err != nil {
		return nil, err
	}
	return &applicationModel{
		ID:              app.ID,
		Name:            app.Name,
		Status:          string(app.Status),
		PreferredTeams:  string(prefs),
		AssignmentPhase: string(app.Assignment.Phase),
		InterviewerID:   app.Assignment.InterviewerID,
		ProposedTime:    app.Assignment.ProposedTime,
		ProposedScore:   app.Assignment.ProposedScore,
		InterviewID:     app.Assignment.InterviewID,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}, nil
}

func (m *interviewModel) toDomain() *domain.Interview {
	return &domain.Interview{
		ID:              m.ID,
		ApplicantID:     m.ApplicantID,
		InterviewerID:   m.InterviewerID,
		Interval:        domain.TimeInterval{Start: m.StartAt.UTC(), End: m.EndAt.UTC()},
		Location:        m.Location,
		Team:            domain.Team(m.Team),
		IsPlaceholder:   m.IsPlaceholder,
		PlaceholderName: m.PlaceholderName,
		CreatedAt:       m.CreatedAt,
	}
}

func interviewFromDomain(iv *domain.Interview) *interviewModel {
	return &interviewModel{
		ID:              iv.ID,
		ApplicantID:     iv.ApplicantID,
		InterviewerID:   iv.InterviewerID,
		StartAt:         iv.Interval.Start.UTC(),
		EndAt:           iv.Interval.End.UTC(),
		Location:        iv.Location,
		Team:            string(iv.Team),
		IsPlaceholder:   iv.IsPlaceholder,
		PlaceholderName: iv.PlaceholderName,
		CreatedAt:       iv.CreatedAt,
	}
}

func (m *busyBlockModel) toDomain() *domain.BusyBlock {
	return &domain.BusyBlock{
		ID:            m.ID,
		InterviewerID: m.InterviewerID,
		Interval:      domain.TimeInterval{Start: m.StartAt.UTC(), End: m.EndAt.UTC()},
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

func busyBlockFromDomain(b *domain.BusyBlock) *busyBlockModel {
	return &busyBlockModel{
		ID:            b.ID,
		InterviewerID: b.InterviewerID,
		StartAt:       b.Interval.Start.UTC(),
		EndAt:         b.Interval.End.UTC(),
		Reason:        b.Reason,
		CreatedAt:     b.CreatedAt,
	}
}
