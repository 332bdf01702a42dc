package models

import (
	"time"
)

// Notification is an append-only message addressed to a creator. Rows are
// never updated or deleted.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID string    `gorm:"size:64;not null;index" json:"creatorId"`
	Creator   *Creator  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	SentAt    time.Time `gorm:"autoCreateTime;index" json:"sentAt"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
