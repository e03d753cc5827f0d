package repository

import (
	"time"

	"supervision_backend/internal/model"

	"gorm.io/gorm"
)

type IncidentRepository struct {
	DB *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{DB: db}
}

func (r *IncidentRepository) Create(incident *model.Incident) error {
	return r.DB.Create(incident).Error
}

func (r *IncidentRepository) FindByID(id string) (*model.Incident, error) {
	var incident model.Incident
	err := r.DB.Preload("Goal").Where("id = ?", id).First(&incident).Error
	if err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *IncidentRepository) FindAll(area *model.Area) ([]model.Incident, error) {
	q := r.DB.Preload("Goal")
	if area != nil {
		q = q.Where("area = ?", *area)
	}

	var incidents []model.Incident
	err := q.Order("created_at DESC").Find(&incidents).Error
	return incidents, err
}

func (r *IncidentRepository) UpdateStatus(id string, status model.IncidentStatus) error {
	return r.DB.Model(&model.Incident{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AssignGoal links a goal created alongside the incident. Kept as its own
// call so the two-phase create can surface a partial failure.
func (r *IncidentRepository) AssignGoal(incidentID string, goalID uint) error {
	return r.DB.Model(&model.Incident{}).
		Where("id = ?", incidentID).
		Update("goal_id", goalID).Error
}

// CountOverduePending counts deferred incidents that are due but still
// pending. Feeds the overdue gauge.
func (r *IncidentRepository) CountOverduePending(now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Incident{}).
		Where("status = ? AND scheduled_start IS NOT NULL AND scheduled_start <= ?",
			model.IncidentPending, now).
		Count(&count).Error
	return count, err
}
