package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payout records a confirmed revenue-share disbursement. The unique index on
// TxID makes replaying an already-processed incoming transaction impossible:
// the row is inserted in the same database transaction as the revenue
// increment.
type Payout struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TxID         string          `gorm:"uniqueIndex;size:128;not null" json:"txId"`
	CreatorID    string          `gorm:"size:64;not null;index" json:"creatorId"`
	Creator      *Creator        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"amount"`
	SharePercent int64           `gorm:"not null" json:"sharePercent"`
	CreatorShare decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"creatorShare"`
	TransferTxID string          `gorm:"size:128;not null" json:"transferTxId"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TableName specifies the table name for Payout model
func (Payout) TableName() string {
	return "payouts"
}
