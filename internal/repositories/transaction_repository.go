package repositories

import (
	"context"
	"errors"
	"fmt"

	"frauddetect/internal/models"
	"frauddetect/internal/services/risk"

	"gorm.io/gorm"
)

// ErrTransactionNotFound is returned when no analyzed transaction
// exists for an ID.
var ErrTransactionNotFound = errors.New("transaction not found")

// AnalysisStats are the aggregate figures behind the /stats endpoint.
type AnalysisStats struct {
	TotalAnalyzed int64 `json:"total_transactions_analyzed"`
	HighRisk      int64 `json:"high_risk_transactions"`
}

// TransactionRepository persists analyzed transactions and their
// assessments.
type TransactionRepository interface {
	Create(ctx context.Context, record *models.TransactionRecord) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.TransactionRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.TransactionRecord, error)
	Stats(ctx context.Context) (*AnalysisStats, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, record *models.TransactionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.TransactionRecord, error) {
	var record models.TransactionRecord
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &record, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.TransactionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.TransactionRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("analyzed_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *transactionRepository) Stats(ctx context.Context) (*AnalysisStats, error) {
	var stats AnalysisStats
	if err := r.db.WithContext(ctx).Model(&models.TransactionRecord{}).
		Count(&stats.TotalAnalyzed).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionRecord{}).
		Where("risk_level IN ?", []string{risk.RiskLevelHigh, risk.RiskLevelCritical}).
		Count(&stats.HighRisk).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
