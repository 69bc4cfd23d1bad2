package models

import (
	"time"

	"github.com/lib/pq"
)

// Alert statuses
const (
	AlertStatusOpen         = "open"
	AlertStatusAcknowledged = "acknowledged"
)

// Alert is raised for assessments whose score reaches the configured
// alerting threshold so an analyst can follow up. The assessment
// itself is authoritative; the alert is a work-queue item on top of
// it. Details carries the alert priority and a snapshot of the
// engine's confidence and recommended action.
type Alert struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	TransactionID  string         `gorm:"index;not null" json:"transaction_id"`
	UserID         string         `gorm:"index;not null" json:"user_id"`
	RiskScore      float64        `gorm:"not null" json:"risk_score"`
	RiskLevel      string         `gorm:"not null" json:"risk_level"`
	Reasons        pq.StringArray `gorm:"type:text[]" json:"reasons"`
	Details        JSON           `gorm:"type:jsonb" json:"details,omitempty"`
	Status         string         `gorm:"index;not null;default:'open'" json:"status"`
	AcknowledgedBy string         `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
