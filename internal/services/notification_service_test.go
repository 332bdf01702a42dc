package services

import (
	"strings"
	"testing"
	"time"

	"creator-platform/internal/models"
)

func TestSendAndList(t *testing.T) {
	db := setupTestDB(t)
	creators := NewCreatorService(db)
	service := NewNotificationService(db)

	if err := service.Send("ghost", "hello"); err != ErrCreatorNotFound {
		t.Errorf("unknown creator: err = %v, want ErrCreatorNotFound", err)
	}

	if _, err := creators.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := service.Send("c1", "manual message"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	// Make the ordering unambiguous
	if err := db.Model(&models.Notification{}).
		Where("message = ?", "manual message").
		Update("sent_at", time.Now().Add(time.Hour)).Error; err != nil {
		t.Fatalf("failed to adjust sent_at: %v", err)
	}

	list, err := service.ListForCreator("c1")
	if err != nil {
		t.Fatalf("ListForCreator failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("notifications = %d, want 2 (welcome + manual)", len(list))
	}
	if list[0].Message != "manual message" {
		t.Errorf("newest first: got %q", list[0].Message)
	}

	if _, err := service.ListForCreator("ghost"); err != ErrCreatorNotFound {
		t.Errorf("unknown creator list: err = %v, want ErrCreatorNotFound", err)
	}
}

func TestSweepSendsDailyReminder(t *testing.T) {
	db := setupTestDB(t)
	creators := NewCreatorService(db)
	service := NewNotificationService(db)

	if _, err := creators.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	backdateCreator(t, db, "c1", time.Now().Add(-2*24*time.Hour))
	before := countNotifications(t, db, "c1")

	now := time.Now()
	if err := service.SweepReminders(now); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}
	if n := countNotifications(t, db, "c1"); n != before+1 {
		t.Fatalf("notifications after sweep = %d, want %d", n, before+1)
	}

	var latest models.Notification
	if err := db.Where("creator_id = ?", "c1").Order("id DESC").First(&latest).Error; err != nil {
		t.Fatalf("fetch notification: %v", err)
	}
	if !strings.Contains(latest.Message, "8 days left") {
		t.Errorf("reminder message = %q, want 8 days left", latest.Message)
	}

	// Same-day re-run is deduplicated
	if err := service.SweepReminders(now.Add(time.Minute)); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}
	if n := countNotifications(t, db, "c1"); n != before+1 {
		t.Errorf("same-day sweep duplicated the reminder: %d notifications", n)
	}

	// Next day it fires again
	if err := service.SweepReminders(now.Add(24 * time.Hour)); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}
	if n := countNotifications(t, db, "c1"); n != before+2 {
		t.Errorf("next-day sweep missing: %d notifications", n)
	}
}

func TestSweepSingularDayWording(t *testing.T) {
	db := setupTestDB(t)
	creators := NewCreatorService(db)
	service := NewNotificationService(db)

	if _, err := creators.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	backdateCreator(t, db, "c1", time.Now().Add(-9*24*time.Hour-time.Hour))

	if err := service.SweepReminders(time.Now()); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}

	var latest models.Notification
	if err := db.Where("creator_id = ?", "c1").Order("id DESC").First(&latest).Error; err != nil {
		t.Fatalf("fetch notification: %v", err)
	}
	if !strings.Contains(latest.Message, "1 day left") || strings.Contains(latest.Message, "1 days") {
		t.Errorf("reminder message = %q, want singular day", latest.Message)
	}
}

func TestSweepFinalNoticeOnce(t *testing.T) {
	db := setupTestDB(t)
	creators := NewCreatorService(db)
	service := NewNotificationService(db)

	if _, err := creators.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	backdateCreator(t, db, "c1", time.Now().Add(-11*24*time.Hour))
	before := countNotifications(t, db, "c1")

	if err := service.SweepReminders(time.Now()); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}
	if n := countNotifications(t, db, "c1"); n != before+1 {
		t.Fatalf("notifications after expiry sweep = %d, want %d", n, before+1)
	}

	var latest models.Notification
	if err := db.Where("creator_id = ?", "c1").Order("id DESC").First(&latest).Error; err != nil {
		t.Fatalf("fetch notification: %v", err)
	}
	if !strings.Contains(latest.Message, "70%") {
		t.Errorf("final notice = %q, want mention of 70%%", latest.Message)
	}

	// Re-running the sweep never repeats the final notice
	for i := 0; i < 3; i++ {
		if err := service.SweepReminders(time.Now()); err != nil {
			t.Fatalf("SweepReminders failed: %v", err)
		}
	}
	if n := countNotifications(t, db, "c1"); n != before+1 {
		t.Errorf("final notice duplicated: %d notifications", n)
	}
}

func TestSweepSkipsQualifiedAndStandardCreators(t *testing.T) {
	db := setupTestDB(t)
	creators := NewCreatorService(db)
	service := NewNotificationService(db)

	if _, err := creators.Register("qualified", "q", "q@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := creators.UpdateConditions("qualified", 1, 3, 3); err != nil {
		t.Fatalf("UpdateConditions failed: %v", err)
	}

	if _, err := creators.Register("standard", "s", "s@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := db.Model(&models.Creator{}).Where("id = ?", "standard").
		Update("is_early_bird", false).Error; err != nil {
		t.Fatalf("failed to downgrade creator: %v", err)
	}

	qBefore := countNotifications(t, db, "qualified")
	sBefore := countNotifications(t, db, "standard")

	if err := service.SweepReminders(time.Now()); err != nil {
		t.Fatalf("SweepReminders failed: %v", err)
	}

	if n := countNotifications(t, db, "qualified"); n != qBefore {
		t.Errorf("qualified creator received a reminder")
	}
	if n := countNotifications(t, db, "standard"); n != sBefore {
		t.Errorf("standard creator received a reminder")
	}
}
