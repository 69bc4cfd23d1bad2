package models

import "time"

// BlacklistedIP is a single entry in the IP denylist. Membership is the
// only thing the engine ever checks; Reason is for the audit trail.
type BlacklistedIP struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	IPAddress string    `gorm:"uniqueIndex;not null" json:"ip_address"`
	Reason    string    `json:"reason,omitempty"`
	AddedBy   string    `json:"added_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
