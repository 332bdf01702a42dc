package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creator-platform/internal/earlybird"
	"creator-platform/internal/models"
)

// CreatorService handles creator registration and early-bird lifecycle
type CreatorService struct {
	db *gorm.DB
}

// NewCreatorService creates a new CreatorService
func NewCreatorService(db *gorm.DB) *CreatorService {
	return &CreatorService{db: db}
}

// RegistrationResult reports the tier assigned at registration time.
type RegistrationResult struct {
	IsEarlyBird    bool            `json:"isEarlyBird"`
	EarlyBirdBonus decimal.Decimal `json:"earlyBirdBonus"`
	Position       int64           `json:"creatorPosition"`
}

// Register creates a creator with their condition row and classifies the
// early-bird tier from the registration index. The classification is fixed
// here and never recomputed.
func (s *CreatorService) Register(id, username, email string, walletAddress *string) (*RegistrationResult, error) {
	var result RegistrationResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Creator{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count creators: %w", err)
		}

		enrollment := earlybird.ClassifyEnrollment(count)

		bonus := decimal.Zero
		if enrollment.BonusEligible {
			bonus = decimal.NewFromFloat(earlybird.BonusPercent)
		}

		creator := models.Creator{
			ID:             id,
			Username:       username,
			Email:          email,
			WalletAddress:  walletAddress,
			IsEarlyBird:    enrollment.IsEarlyBird,
			EarlyBirdBonus: bonus,
			Revenue:        decimal.Zero,
		}
		if err := tx.Create(&creator).Error; err != nil {
			return fmt.Errorf("failed to create creator: %w", err)
		}

		conditions := models.CreatorConditions{CreatorID: id}
		if err := tx.Create(&conditions).Error; err != nil {
			return fmt.Errorf("failed to create conditions: %w", err)
		}

		if enrollment.IsEarlyBird {
			welcome := models.Notification{
				CreatorID: id,
				Message: fmt.Sprintf(
					"Welcome! You are an Early Bird. Complete the conditions (%d promo post, %d free videos, %d premium videos) within %d days to unlock your bonus!",
					earlybird.MinPromoPosts, earlybird.MinFreeVideos, earlybird.MinPremiumVideos, earlybird.WindowDays,
				),
			}
			if err := tx.Create(&welcome).Error; err != nil {
				return fmt.Errorf("failed to create welcome notification: %w", err)
			}
		}

		result = RegistrationResult{
			IsEarlyBird:    enrollment.IsEarlyBird,
			EarlyBirdBonus: bonus,
			Position:       count + 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Creator registered: id=%s position=%d earlyBird=%v", id, result.Position, result.IsEarlyBird)
	return &result, nil
}

// List returns all creators
func (s *CreatorService) List() ([]models.Creator, error) {
	var creators []models.Creator
	if err := s.db.Find(&creators).Error; err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	return creators, nil
}

// GetCreator fetches a creator by id
func (s *CreatorService) GetCreator(id string) (*models.Creator, error) {
	var creator models.Creator
	if err := s.db.First(&creator, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to fetch creator: %w", err)
	}
	return &creator, nil
}

// ConditionsSummary is the response shape of a conditions update.
type ConditionsSummary struct {
	PromoPost     int  `json:"promoPost"`
	FreeVideos    int  `json:"freeVideos"`
	PremiumVideos int  `json:"premiumVideos"`
	ConditionsMet bool `json:"conditionsMet"`
	DaysRemaining int  `json:"daysRemaining"`
}

// UpdateConditions overwrites the client-reported counters and latches
// ConditionsMet once every threshold holds. The latch never clears: a later
// update with lower counters keeps the qualification. The congratulation
// notification fires only on the false-to-true crossing.
func (s *CreatorService) UpdateConditions(creatorID string, promoPost, freeVideos, premiumVideos int) (*ConditionsSummary, error) {
	creator, err := s.GetCreator(creatorID)
	if err != nil {
		return nil, err
	}

	if !creator.IsEarlyBird {
		return nil, ErrNotEarlyBird
	}

	window := earlybird.EvaluateWindow(creator.JoinedAt, time.Now())
	if window.DeadlinePassed {
		return nil, ErrWindowExpired
	}

	var conditions models.CreatorConditions
	if err := s.db.First(&conditions, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionsNotFound
		}
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}

	justQualified := !conditions.ConditionsMet &&
		earlybird.ConditionsSatisfied(promoPost, freeVideos, premiumVideos)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"promo_post":     promoPost,
			"free_videos":    freeVideos,
			"premium_videos": premiumVideos,
		}
		if justQualified {
			updates["conditions_met"] = true
		}

		if err := tx.Model(&models.CreatorConditions{}).
			Where("creator_id = ?", creatorID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update conditions: %w", err)
		}

		if justQualified {
			congrats := models.Notification{
				CreatorID: creatorID,
				Message:   "Congratulations! You completed the Early Bird conditions and your bonus is now active!",
			}
			if err := tx.Create(&congrats).Error; err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if justQualified {
		log.Printf("Creator %s qualified for the early-bird bonus", creatorID)
	}

	return &ConditionsSummary{
		PromoPost:     promoPost,
		FreeVideos:    freeVideos,
		PremiumVideos: premiumVideos,
		ConditionsMet: conditions.ConditionsMet || justQualified,
		DaysRemaining: window.DaysRemaining,
	}, nil
}

// CreatorStatus is the full tier/window/share snapshot for one creator.
type CreatorStatus struct {
	CreatorID      string            `json:"creatorId"`
	Username       string            `json:"username"`
	IsEarlyBird    bool              `json:"isEarlyBird"`
	EarlyBirdBonus decimal.Decimal   `json:"earlyBirdBonus"`
	Tier           string            `json:"tier"`
	SharePercent   int64             `json:"sharePercent"`
	Revenue        decimal.Decimal   `json:"revenue"`
	Conditions     ConditionsSummary `json:"conditions"`
	DeadlinePassed bool              `json:"deadlinePassed"`
}

// GetStatus computes the current policy snapshot for a creator
func (s *CreatorService) GetStatus(creatorID string) (*CreatorStatus, error) {
	creator, err := s.GetCreator(creatorID)
	if err != nil {
		return nil, err
	}

	var conditions models.CreatorConditions
	if err := s.db.First(&conditions, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionsNotFound
		}
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}

	status := earlybird.Evaluate(
		creator.IsEarlyBird,
		creator.BonusEligible(),
		conditions.ConditionsMet,
		creator.JoinedAt,
		time.Now(),
	)

	return &CreatorStatus{
		CreatorID:      creator.ID,
		Username:       creator.Username,
		IsEarlyBird:    creator.IsEarlyBird,
		EarlyBirdBonus: creator.EarlyBirdBonus,
		Tier:           status.Tier,
		SharePercent:   status.SharePercent,
		Revenue:        creator.Revenue,
		Conditions: ConditionsSummary{
			PromoPost:     conditions.PromoPost,
			FreeVideos:    conditions.FreeVideos,
			PremiumVideos: conditions.PremiumVideos,
			ConditionsMet: conditions.ConditionsMet,
			DaysRemaining: status.Window.DaysRemaining,
		},
		DeadlinePassed: status.Window.DeadlinePassed,
	}, nil
}
