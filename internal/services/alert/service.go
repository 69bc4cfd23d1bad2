// Package alert raises and manages fraud alerts for high-severity
// assessments. Alerts are a work queue on top of the persisted
// assessment, not an input to scoring.
package alert

import (
	"context"

	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
	"frauddetect/internal/services/risk"
)

// Alert priorities, derived from the configured score thresholds.
const (
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Default alerting thresholds. Both sit above the engine's risk-level
// bands on purpose: not every HIGH assessment warrants analyst time.
const (
	DefaultHighRiskThreshold     = 70.0
	DefaultCriticalRiskThreshold = 85.0
)

// Config tunes when alerts are raised. Zero thresholds fall back to
// the defaults.
type Config struct {
	Enabled               bool
	HighRiskThreshold     float64 // minimum risk score that raises an alert
	CriticalRiskThreshold float64 // score at which the alert is flagged critical
}

type Service interface {
	// MaybeRaise creates an alert when the assessment's score reaches
	// the high-risk threshold. Returns (nil, nil) when no alert is
	// warranted or alerting is off.
	MaybeRaise(ctx context.Context, userID string, assessment *risk.RiskAssessment) (*models.Alert, error)
	List(ctx context.Context, status string, limit int) ([]models.Alert, error)
	Acknowledge(ctx context.Context, id uint, by string) error
}

type service struct {
	repo   repositories.AlertRepository
	config Config
}

func NewService(repo repositories.AlertRepository, cfg Config) Service {
	if repo == nil {
		panic("alert repository is required")
	}
	if cfg.HighRiskThreshold <= 0 {
		cfg.HighRiskThreshold = DefaultHighRiskThreshold
	}
	if cfg.CriticalRiskThreshold <= 0 {
		cfg.CriticalRiskThreshold = DefaultCriticalRiskThreshold
	}
	return &service{repo: repo, config: cfg}
}

func (s *service) MaybeRaise(ctx context.Context, userID string, assessment *risk.RiskAssessment) (*models.Alert, error) {
	if !s.config.Enabled {
		return nil, nil
	}
	if assessment.RiskScore < s.config.HighRiskThreshold {
		return nil, nil
	}

	priority := PriorityHigh
	if assessment.RiskScore >= s.config.CriticalRiskThreshold {
		priority = PriorityCritical
	}

	alert := &models.Alert{
		TransactionID: assessment.TransactionID,
		UserID:        userID,
		RiskScore:     assessment.RiskScore,
		RiskLevel:     assessment.RiskLevel,
		Reasons:       assessment.Reasons,
		Details: models.JSON{
			"priority":           priority,
			"confidence":         assessment.Confidence,
			"recommended_action": assessment.RecommendedAction,
		},
		Status: models.AlertStatusOpen,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *service) List(ctx context.Context, status string, limit int) ([]models.Alert, error) {
	return s.repo.List(ctx, status, limit)
}

func (s *service) Acknowledge(ctx context.Context, id uint, by string) error {
	return s.repo.Acknowledge(ctx, id, by)
}
