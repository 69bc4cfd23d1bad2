package repositories

import (
	"context"
	"errors"
	"fmt"

	"frauddetect/internal/models"
	"frauddetect/internal/services/risk"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserProfileRepository manages user spending baselines.
type UserProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
	Delete(ctx context.Context, userID string) error
}

// ErrProfileNotFound is returned when no baseline exists for a user.
var ErrProfileNotFound = errors.New("user profile not found")

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *userProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"avg_transaction_amount",
			"preferred_locations",
			"preferred_merchants",
			"account_age_days",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (r *userProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error
}

// ProfileStore adapts the repository to the engine's read-only lookup
// contract: an unknown user is (nil, nil), not an error.
type ProfileStore struct {
	repo UserProfileRepository
}

func NewProfileStore(repo UserProfileRepository) *ProfileStore {
	return &ProfileStore{repo: repo}
}

func (s *ProfileStore) Get(ctx context.Context, userID string) (*risk.UserProfile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &risk.UserProfile{
		AvgTransactionAmount: profile.AvgTransactionAmount,
		PreferredLocations:   profile.PreferredLocations,
		PreferredMerchants:   profile.PreferredMerchants,
		AccountAgeDays:       profile.AccountAgeDays,
	}, nil
}
