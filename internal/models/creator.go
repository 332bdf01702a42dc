package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Creator represents a content creator registered on the platform.
// ID is supplied by the frontend at registration time, not generated here.
type Creator struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	Username       string          `gorm:"size:255;not null" json:"username"`
	Email          string          `gorm:"size:255;not null" json:"email"`
	WalletAddress  *string         `gorm:"size:64" json:"walletAddress,omitempty"`
	IsEarlyBird    bool            `gorm:"not null;default:false;index" json:"isEarlyBird"`
	EarlyBirdBonus decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"earlyBirdBonus"`
	Revenue        decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"revenue"`
	JoinedAt       time.Time       `gorm:"autoCreateTime" json:"joinedAt"`
}

// TableName specifies the table name for Creator model
func (Creator) TableName() string {
	return "creators"
}

// BonusEligible reports whether the creator was among the first hundred
// registrations (lifetime 90% tier).
func (c *Creator) BonusEligible() bool {
	return c.EarlyBirdBonus.IsPositive()
}

// CreatorConditions tracks the activity counters a creator must hit inside
// the qualification window. Counters are client-reported. ConditionsMet is a
// latched flag: once set it is never cleared, even if counters drop later.
type CreatorConditions struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatorID       string     `gorm:"uniqueIndex;size:64;not null" json:"creatorId"`
	Creator         *Creator   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	PromoPost       int        `gorm:"not null;default:0" json:"promoPost"`
	FreeVideos      int        `gorm:"not null;default:0" json:"freeVideos"`
	PremiumVideos   int        `gorm:"not null;default:0" json:"premiumVideos"`
	ConditionsMet   bool       `gorm:"not null;default:false;index" json:"conditionsMet"`
	LastReminderAt  *time.Time `json:"lastReminderAt,omitempty"`
	FinalNoticeSent bool       `gorm:"not null;default:false" json:"finalNoticeSent"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for CreatorConditions model
func (CreatorConditions) TableName() string {
	return "creator_conditions"
}
