package models

import (
	"time"

	"github.com/lib/pq"
)

// TransactionRecord persists one analyzed transaction together with the
// risk assessment it received. The engine itself never touches this
// model; the analyze handler writes it after scoring completes.
type TransactionRecord struct {
	ID                uint           `gorm:"primarykey" json:"-"`
	TransactionID     string         `gorm:"uniqueIndex;not null" json:"transaction_id"`
	UserID            string         `gorm:"index;not null" json:"user_id"`
	Amount            float64        `gorm:"not null" json:"amount"`
	MerchantCategory  string         `json:"merchant_category"`
	Location          string         `json:"location"`
	PaymentMethod     string         `json:"payment_method"`
	DeviceFingerprint string         `json:"device_fingerprint,omitempty"`
	IPAddress         string         `json:"ip_address,omitempty"`
	RiskScore         float64        `gorm:"not null" json:"risk_score"`
	RiskLevel         string         `gorm:"index;not null" json:"risk_level"`
	Confidence        float64        `gorm:"not null" json:"confidence"`
	Reasons           pq.StringArray `gorm:"type:text[]" json:"reasons"`
	RecommendedAction string         `gorm:"not null" json:"recommended_action"`
	AnalyzedAt        time.Time      `gorm:"index" json:"analyzed_at"`
	CreatedAt         time.Time      `json:"-"`
}
