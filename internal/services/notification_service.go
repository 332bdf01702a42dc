package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"creator-platform/internal/earlybird"
	"creator-platform/internal/models"
)

// NotificationService appends and lists creator notifications and runs the
// early-bird reminder sweep.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send appends a notification for a creator
func (s *NotificationService) Send(creatorID, message string) error {
	var count int64
	if err := s.db.Model(&models.Creator{}).Where("id = ?", creatorID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check creator: %w", err)
	}
	if count == 0 {
		return ErrCreatorNotFound
	}

	notification := models.Notification{
		CreatorID: creatorID,
		Message:   message,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListForCreator returns a creator's notifications, newest first
func (s *NotificationService) ListForCreator(creatorID string) ([]models.Notification, error) {
	var creator models.Creator
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to fetch creator: %w", err)
	}

	var notifications []models.Notification
	if err := s.db.Where("creator_id = ?", creatorID).
		Order("sent_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// pendingCreator is one row of the sweep scan.
type pendingCreator struct {
	ID              string
	JoinedAt        time.Time
	LastReminderAt  *time.Time
	FinalNoticeSent bool
}

// SweepReminders scans every early-bird creator who has not met the
// conditions yet and emits time-based notifications: a daily countdown
// reminder while the window is open, and a single final notice once it has
// expired. LastReminderAt and FinalNoticeSent keep repeated sweeps from
// duplicating messages.
func (s *NotificationService) SweepReminders(now time.Time) error {
	var pending []pendingCreator
	err := s.db.Model(&models.Creator{}).
		Select("creators.id, creators.joined_at, creator_conditions.last_reminder_at, creator_conditions.final_notice_sent").
		Joins("JOIN creator_conditions ON creator_conditions.creator_id = creators.id").
		Where("creators.is_early_bird = ? AND creator_conditions.conditions_met = ?", true, false).
		Scan(&pending).Error
	if err != nil {
		return fmt.Errorf("failed to scan pending creators: %w", err)
	}

	log.Printf("Reminder sweep: %d pending early-bird creators", len(pending))

	for _, creator := range pending {
		window := earlybird.EvaluateWindow(creator.JoinedAt, now)

		if !window.DeadlinePassed {
			if creator.LastReminderAt != nil && sameDay(*creator.LastReminderAt, now) {
				continue
			}
			if err := s.sendReminder(creator.ID, window.DaysRemaining, now); err != nil {
				log.Printf("Failed to send reminder to %s: %v", creator.ID, err)
			}
			continue
		}

		if creator.FinalNoticeSent {
			continue
		}
		if err := s.sendFinalNotice(creator.ID); err != nil {
			log.Printf("Failed to send final notice to %s: %v", creator.ID, err)
		}
	}

	return nil
}

func (s *NotificationService) sendReminder(creatorID string, daysRemaining int, now time.Time) error {
	dayWord := "days"
	if daysRemaining == 1 {
		dayWord = "day"
	}
	message := fmt.Sprintf(
		"Reminder: you have %d %s left to complete the Early Bird conditions (%d promo post, %d free videos, %d premium videos) and unlock your bonus!",
		daysRemaining, dayWord,
		earlybird.MinPromoPosts, earlybird.MinFreeVideos, earlybird.MinPremiumVideos,
	)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Notification{CreatorID: creatorID, Message: message}).Error; err != nil {
			return err
		}
		return tx.Model(&models.CreatorConditions{}).
			Where("creator_id = ?", creatorID).
			Update("last_reminder_at", now).Error
	})
}

func (s *NotificationService) sendFinalNotice(creatorID string) error {
	message := fmt.Sprintf(
		"Deadline passed: you did not complete the Early Bird conditions within %d days. Your revenue share is now %d%%.",
		earlybird.WindowDays, earlybird.BaseShare,
	)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Notification{CreatorID: creatorID, Message: message}).Error; err != nil {
			return err
		}
		return tx.Model(&models.CreatorConditions{}).
			Where("creator_id = ?", creatorID).
			Update("final_notice_sent", true).Error
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
