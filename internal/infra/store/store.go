package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

// Store implements domain.ScheduleStore on a relational database through
// gorm. InTransaction hands out a Store bound to the transaction handle so
// conflict checks and writes share one snapshot.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ domain.ScheduleStore = (*Store)(nil)

func (s *Store) InTransaction(ctx context.Context, fn func(tx domain.ScheduleStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) GetInterviewer(ctx context.Context, id string) (*domain.Interviewer, error) {
	var m interviewerModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interviewer %s: %w", id, domain.ErrInterviewerNotFound)
		}
		return nil, err
	}
	return m.toDomain()
}

func (s *Store) ListInterviewers(ctx context.Context) ([]domain.Interviewer, error) {
	var models []interviewerModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	interviewers := make([]domain.Interviewer, 0, len(models))
	for i := range models {
		iv, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		interviewers = append(interviewers, *iv)
	}
	return interviewers, nil
}

// CreateInterviewer exists for seeding and admin tooling.
func (s *Store) CreateInterviewer(ctx context.Context, iv *domain.Interviewer) error {
	m, err := interviewerFromDomain(iv)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *Store) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	var m applicationModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrApplicationNotFound)
		}
		return nil, err
	}
	return m.toDomain()
}

func (s *Store) ListUnassignedInterviewing(ctx context.Context) ([]domain.Application, error) {
	var models []applicationModel
	err := s.db.WithContext(ctx).
		Where("status = ? AND assignment_phase = ?", string(domain.StatusInterviewing), string(domain.AssignmentNone)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(models))
	for i := range models {
		app, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

// CreateApplication exists for seeding and admin tooling.
func (s *Store) CreateApplication(ctx context.Context, app *domain.Application) error {
	m, err := applicationFromDomain(app)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *Store) UpdateApplication(ctx context.Context, app *domain.Application) error {
	m, err := applicationFromDomain(app)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&applicationModel{}).Where("id = ?", m.ID).
		Select("Name", "Status", "PreferredTeams", "AssignmentPhase", "InterviewerID", "ProposedTime", "ProposedScore", "InterviewID", "UpdatedAt").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("application %s: %w", app.ID, domain.ErrApplicationNotFound)
	}
	return nil
}

func (s *Store) CreateInterview(ctx context.Context, iv *domain.Interview) error {
	return s.db.WithContext(ctx).Create(interviewFromDomain(iv)).Error
}

func (s *Store) GetInterview(ctx context.Context, id string) (*domain.Interview, error) {
	var m interviewModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %s: %w", id, domain.ErrInterviewNotFound)
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (s *Store) UpdateInterview(ctx context.Context, iv *domain.Interview) error {
	res := s.db.WithContext(ctx).Model(&interviewModel{}).Where("id = ?", iv.ID).
		Select("ApplicantID", "InterviewerID", "StartAt", "EndAt", "Location", "Team", "IsPlaceholder", "PlaceholderName").
		Updates(interviewFromDomain(iv))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("interview %s: %w", iv.ID, domain.ErrInterviewNotFound)
	}
	return nil
}

func (s *Store) DeleteInterview(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&interviewModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("interview %s: %w", id, domain.ErrInterviewNotFound)
	}
	return nil
}

func (s *Store) ListInterviewerInterviewsOverlapping(ctx context.Context, interviewerID string, interval domain.TimeInterval) ([]domain.Interview, error) {
	var models []interviewModel
	err := s.db.WithContext(ctx).
		Where("interviewer_id = ? AND start_at < ? AND end_at > ?", interviewerID, interval.End.UTC(), interval.Start.UTC()).
		Order("start_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return interviewsToDomain(models), nil
}

func (s *Store) ListApplicantInterviewsOverlapping(ctx context.Context, applicantID string, interval domain.TimeInterval) ([]domain.Interview, error) {
	var models []interviewModel
	err := s.db.WithContext(ctx).
		Where("applicant_id = ? AND start_at < ? AND end_at > ?", applicantID, interval.End.UTC(), interval.Start.UTC()).
		Order("start_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return interviewsToDomain(models), nil
}

func interviewsToDomain(models []interviewModel) []domain.Interview {
	interviews := make([]domain.Interview, 0, len(models))
	for i := range models {
		interviews = append(interviews, *models[i].toDomain())
	}
	return interviews
}

func (s *Store) CreateBusyBlocks(ctx context.Context, blocks []domain.BusyBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	models := make([]busyBlockModel, 0, len(blocks))
	for i := range blocks {
		models = append(models, *busyBlockFromDomain(&blocks[i]))
	}
	return s.db.WithContext(ctx).Create(&models).Error
}

func (s *Store) GetBusyBlock(ctx context.Context, id string) (*domain.BusyBlock, error) {
	var model busyBlockModel
	err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("busy block %s: %w", id, domain.ErrBusyBlockNotFound)
		}
		return nil, err
	}
	return model.toDomain(), nil
}

func (s *Store) DeleteBusyBlock(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&busyBlockModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("busy block %s: %w", id, domain.ErrBusyBlockNotFound)
	}
	return nil
}

func (s *Store) ListBusyBlocksOverlapping(ctx context.Context, interviewerID string, interval domain.TimeInterval) ([]domain.BusyBlock, error) {
	var models []busyBlockModel
	err := s.db.WithContext(ctx).
		Where("interviewer_id = ? AND start_at < ? AND end_at > ?", interviewerID, interval.End.UTC(), interval.Start.UTC()).
		Order("start_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	blocks := make([]domain.BusyBlock, 0, len(models))
	for i := range models {
		blocks = append(blocks, *models[i].toDomain())
	}
	return blocks, nil
}

func (s *Store) DeleteBusyBlocksOverlapping(ctx context.Context, interviewerID string, interval domain.TimeInterval) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("interviewer_id = ? AND start_at < ? AND end_at > ?", interviewerID, interval.End.UTC(), interval.Start.UTC()).
		Delete(&busyBlockModel{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListBusyBlockStarts(ctx context.Context, interviewerID string, starts []time.Time) ([]time.Time, error) {
	if len(starts) == 0 {
		return nil, nil
	}
	utc := make([]time.Time, 0, len(starts))
	for _, t := range starts {
		utc = append(utc, t.UTC())
	}
	var existing []time.Time
	err := s.db.WithContext(ctx).Model(&busyBlockModel{}).
		Where("interviewer_id = ? AND start_at IN ?", interviewerID, utc).
		Pluck("start_at", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Store) DeleteBusyBlocksByStarts(ctx context.Context, interviewerID string, starts []time.Time) (int64, error) {
	if len(starts) == 0 {
		return 0, nil
	}
	utc := make([]time.Time, 0, len(starts))
	for _, t := range starts {
		utc = append(utc, t.UTC())
	}
	res := s.db.WithContext(ctx).
		Where("interviewer_id = ? AND start_at IN ?", interviewerID, utc).
		Delete(&busyBlockModel{})
	return res.RowsAffected, res.Error
}

func (s *Store) ReplaceApplicantAvailability(ctx context.Context, applicantID string, tokens []domain.GridToken) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&applicantSlotModel{}, "applicant_id = ?", applicantID).Error; err != nil {
			return err
		}
		if len(tokens) == 0 {
			return nil
		}
		now := time.Now().UTC()
		models := make([]applicantSlotModel, 0, len(tokens))
		for _, tok := range tokens {
			models = append(models, applicantSlotModel{
				ApplicantID: applicantID,
				SlotKey:     string(tok),
				CreatedAt:   now,
			})
		}
		return tx.Create(&models).Error
	})
}

func (s *Store) GetApplicantAvailability(ctx context.Context, applicantID string) ([]domain.GridToken, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&applicantSlotModel{}).
		Where("applicant_id = ?", applicantID).
		Order("slot_key").
		Pluck("slot_key", &keys).Error
	if err != nil {
		return nil, err
	}
	tokens := make([]domain.GridToken, 0, len(keys))
	for _, k := range keys {
		tokens = append(tokens, domain.GridToken(k))
	}
	return tokens, nil
}

func (s *Store) ReplaceInterviewerAvailability(ctx context.Context, interviewerID string, selections []domain.AvailabilitySelection) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&interviewerSlotModel{}, "interviewer_id = ?", interviewerID).Error; err != nil {
			return err
		}
		if len(selections) == 0 {
			return nil
		}
		models := make([]interviewerSlotModel, 0, len(selections))
		for _, sel := range selections {
			models = append(models, interviewerSlotModel{
				InterviewerID: interviewerID,
				SlotKey:       string(sel.Token),
				SelectedAt:    sel.SelectedAt.UTC(),
			})
		}
		return tx.Create(&models).Error
	})
}

func (s *Store) GetInterviewerAvailability(ctx context.Context, interviewerID string) ([]domain.AvailabilitySelection, error) {
	var models []interviewerSlotModel
	err := s.db.WithContext(ctx).
		Where("interviewer_id = ?", interviewerID).
		Order("slot_key").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	selections := make([]domain.AvailabilitySelection, 0, len(models))
	for _, m := range models {
		selections = append(selections, domain.AvailabilitySelection{
			InterviewerID: m.InterviewerID,
			Token:         domain.GridToken(m.SlotKey),
			SelectedAt:    m.SelectedAt,
		})
	}
	return selections, nil
}

func (s *Store) ListAllInterviewerAvailability(ctx context.Context) (map[string][]domain.GridToken, error) {
	var models []interviewerSlotModel
	err := s.db.WithContext(ctx).Order("interviewer_id, slot_key").Find(&models).Error
	if err != nil {
		return nil, err
	}
	byInterviewer := make(map[string][]domain.GridToken)
	for _, m := range models {
		byInterviewer[m.InterviewerID] = append(byInterviewer[m.InterviewerID], domain.GridToken(m.SlotKey))
	}
	return byInterviewer, nil
}
