package repository

import (
	"time"

	"supervision_backend/internal/model"

	"gorm.io/gorm"
)

// DailyRecordRepository is the record-store accessor: achieved values keyed
// by (goal, date, shift). Records are append-or-update, never deleted.

type DailyRecordRepository struct {
	DB *gorm.DB
}

func NewDailyRecordRepository(db *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{DB: db}
}

func (r *DailyRecordRepository) Create(record *model.DailyRecord) error {
	return r.DB.Create(record).Error
}

func (r *DailyRecordRepository) FindByID(id uint) (*model.DailyRecord, error) {
	var record model.DailyRecord
	err := r.DB.First(&record, id).Error
	return &record, err
}

// UpdateValues supersedes the observation held under a known record id.
func (r *DailyRecordRepository) UpdateValues(record *model.DailyRecord) error {
	return r.DB.Model(&model.DailyRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"value":      record.Value,
			"achieved":   record.Achieved,
			"comment":    record.Comment,
			"updated_at": time.Now(),
		}).Error
}

// FindInWindow returns all records for a goal inside [start, end], optionally
// narrowed to one shift. Dates are compared at day granularity.
func (r *DailyRecordRepository) FindInWindow(goalID uint, start, end time.Time, shift *model.Shift) ([]model.DailyRecord, error) {
	q := r.DB.Where("goal_id = ? AND date >= ? AND date <= ?",
		goalID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if shift != nil {
		q = q.Where("shift = ?", *shift)
	}

	var records []model.DailyRecord
	err := q.Order("date").Find(&records).Error
	return records, err
}

// FindByIdentity looks up the record for one exact (goal, date, shift) slot.
func (r *DailyRecordRepository) FindByIdentity(goalID uint, date time.Time, shift model.Shift) (*model.DailyRecord, error) {
	var record model.DailyRecord
	err := r.DB.Where("goal_id = ? AND date = ? AND shift = ?",
		goalID, date.Format("2006-01-02"), shift).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
