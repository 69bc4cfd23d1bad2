package repositories

import (
	"context"
	"errors"
	"time"

	"frauddetect/internal/models"

	"gorm.io/gorm"
)

// ErrAlertNotFound is returned when no alert exists for an ID.
var ErrAlertNotFound = errors.New("alert not found")

// AlertRepository persists fraud alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, status string, limit int) ([]models.Alert, error)
	Acknowledge(ctx context.Context, id uint, by string) error
	CountOpen(ctx context.Context) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) List(ctx context.Context, status string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var alerts []models.Alert
	if err := q.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) Acknowledge(ctx context.Context, id uint, by string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("id = ? AND status = ?", id, models.AlertStatusOpen).
		Updates(map[string]interface{}{
			"status":          models.AlertStatusAcknowledged,
			"acknowledged_by": by,
			"acknowledged_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("status = ?", models.AlertStatusOpen).Count(&count).Error
	return count, err
}
