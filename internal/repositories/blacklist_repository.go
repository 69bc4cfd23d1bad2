package repositories

import (
	"context"
	"fmt"

	"frauddetect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlacklistRepository manages the IP denylist. Contains satisfies the
// engine's risk.BlacklistStore interface directly.
type BlacklistRepository interface {
	Contains(ctx context.Context, ip string) (bool, error)
	Add(ctx context.Context, entry *models.BlacklistedIP) error
	Remove(ctx context.Context, ip string) error
	List(ctx context.Context) ([]models.BlacklistedIP, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) Contains(ctx context.Context, ip string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BlacklistedIP{}).
		Where("ip_address = ?", ip).Count(&count).Error; err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return count > 0, nil
}

func (r *blacklistRepository) Add(ctx context.Context, entry *models.BlacklistedIP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip_address"}},
		DoNothing: true,
	}).Create(entry).Error
}

func (r *blacklistRepository) Remove(ctx context.Context, ip string) error {
	return r.db.WithContext(ctx).Where("ip_address = ?", ip).Delete(&models.BlacklistedIP{}).Error
}

func (r *blacklistRepository) List(ctx context.Context) ([]models.BlacklistedIP, error) {
	var entries []models.BlacklistedIP
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
