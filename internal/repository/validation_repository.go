package repository

import (
	"time"

	"supervision_backend/internal/model"

	"gorm.io/gorm"
)

type ValidationRepository struct {
	DB *gorm.DB
}

func NewValidationRepository(db *gorm.DB) *ValidationRepository {
	return &ValidationRepository{DB: db}
}

func (r *ValidationRepository) FindItemsByArea(area model.Area) ([]model.ValidationItem, error) {
	var items []model.ValidationItem
	err := r.DB.Where("area = ? AND enabled = ?", area, true).
		Order("stage, name").Find(&items).Error
	return items, err
}

// CountByRound counts submissions per round for one area's shift-day. The
// result feeds the round gate: a round is complete when its count reaches the
// number of checklist items.
func (r *ValidationRepository) CountByRound(area model.Area, date time.Time, shift model.Shift) (map[int]int64, error) {
	type roundCount struct {
		Round int
		N     int64
	}
	var rows []roundCount
	err := r.DB.Model(&model.ValidationSubmission{}).
		Select("round, COUNT(*) AS n").
		Where("area = ? AND date = ? AND shift = ?", area, date.Format("2006-01-02"), shift).
		Group("round").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Round] = row.N
	}
	return counts, nil
}

// FindLatestSubmission returns the most recent submission by an area on a
// shift-day, or gorm.ErrRecordNotFound when there is none (not in cooldown).
func (r *ValidationRepository) FindLatestSubmission(area model.Area, date time.Time, shift model.Shift) (*model.ValidationSubmission, error) {
	var sub model.ValidationSubmission
	err := r.DB.Where("area = ? AND date = ? AND shift = ?", area, date.Format("2006-01-02"), shift).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateBatch persists one round's submissions atomically.
func (r *ValidationRepository) CreateBatch(subs []model.ValidationSubmission) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range subs {
			if err := tx.Create(&subs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ValidationRepository) FindSubmissions(area model.Area, date time.Time, shift model.Shift, status *model.SubmissionStatus) ([]model.ValidationSubmission, error) {
	q := r.DB.Preload("Item").
		Where("area = ? AND date = ? AND shift = ?", area, date.Format("2006-01-02"), shift)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var subs []model.ValidationSubmission
	err := q.Order("round, created_at").Find(&subs).Error
	return subs, err
}

func (r *ValidationRepository) FindSubmissionByID(id string) (*model.ValidationSubmission, error) {
	var sub model.ValidationSubmission
	err := r.DB.Preload("Item").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *ValidationRepository) UpdateStatus(id string, status model.SubmissionStatus) error {
	return r.DB.Model(&model.ValidationSubmission{}).
		Where("id = ?", id).
		Update("status", status).Error
}
