package models

import (
	"time"

	"github.com/lib/pq"
)

// UserProfile holds the per-user spending baseline the scoring engine
// compares transactions against. Absence of a profile is a normal state
// (new or unknown user), not an error.
type UserProfile struct {
	ID                   uint           `gorm:"primarykey" json:"-"`
	UserID               string         `gorm:"uniqueIndex;not null" json:"user_id"`
	AvgTransactionAmount float64        `gorm:"not null;default:0" json:"avg_transaction_amount"`
	PreferredLocations   pq.StringArray `gorm:"type:text[]" json:"preferred_locations"`
	PreferredMerchants   pq.StringArray `gorm:"type:text[]" json:"preferred_merchants"`
	AccountAgeDays       int            `gorm:"not null;default:0" json:"account_age_days"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}
