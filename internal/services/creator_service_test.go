package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"creator-platform/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Creator{},
		&models.CreatorConditions{},
		&models.Notification{},
		&models.Payout{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func backdateCreator(t *testing.T, db *gorm.DB, creatorID string, joinedAt time.Time) {
	t.Helper()
	if err := db.Model(&models.Creator{}).
		Where("id = ?", creatorID).
		Update("joined_at", joinedAt).Error; err != nil {
		t.Fatalf("failed to backdate creator: %v", err)
	}
}

func countNotifications(t *testing.T, db *gorm.DB, creatorID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("creator_id = ?", creatorID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}

func TestRegisterAssignsTiers(t *testing.T) {
	db := setupTestDB(t)
	service := NewCreatorService(db)

	res, err := service.Register("creator-1", "alice", "alice@example.com", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !res.IsEarlyBird {
		t.Error("first creator must be early bird")
	}
	if res.EarlyBirdBonus.String() != "90" {
		t.Errorf("first creator bonus = %s, want 90", res.EarlyBirdBonus)
	}
	if res.Position != 1 {
		t.Errorf("position = %d, want 1", res.Position)
	}

	// An early-bird registration appends a welcome notification
	if n := countNotifications(t, db, "creator-1"); n != 1 {
		t.Errorf("welcome notifications = %d, want 1", n)
	}

	// The conditions row is created atomically with the creator
	var conditions models.CreatorConditions
	if err := db.First(&conditions, "creator_id = ?", "creator-1").Error; err != nil {
		t.Fatalf("conditions row missing: %v", err)
	}
	if conditions.ConditionsMet {
		t.Error("fresh conditions must start unmet")
	}
}

func TestRegisterTierBoundaries(t *testing.T) {
	db := setupTestDB(t)
	service := NewCreatorService(db)

	// Seed 99 creators so the 100th registration is the last bonus slot
	for i := 0; i < 99; i++ {
		id := fmt.Sprintf("seed-%d", i)
		if _, err := service.Register(id, id, id+"@example.com", nil); err != nil {
			t.Fatalf("seed register failed: %v", err)
		}
	}

	res, err := service.Register("hundredth", "hundredth", "h@example.com", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !res.IsEarlyBird || res.EarlyBirdBonus.IsZero() {
		t.Errorf("100th creator (index 99): got earlyBird=%v bonus=%s", res.IsEarlyBird, res.EarlyBirdBonus)
	}

	// 101st registration (index 100): bonus window closed, early bird still open
	res, err = service.Register("hundred-first", "hundred-first", "hf@example.com", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !res.IsEarlyBird {
		t.Error("101st creator must still be early bird")
	}
	if !res.EarlyBirdBonus.IsZero() {
		t.Errorf("101st creator bonus = %s, want 0", res.EarlyBirdBonus)
	}
	if res.Position != 101 {
		t.Errorf("position = %d, want 101", res.Position)
	}
}

func TestUpdateConditionsLatch(t *testing.T) {
	db := setupTestDB(t)
	service := NewCreatorService(db)

	if _, err := service.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	welcome := countNotifications(t, db, "c1")

	// Below threshold: no latch, no congratulation
	summary, err := service.UpdateConditions("c1", 1, 2, 3)
	if err != nil {
		t.Fatalf("UpdateConditions failed: %v", err)
	}
	if summary.ConditionsMet {
		t.Error("conditions must not be met below threshold")
	}

	// Crossing the threshold latches and congratulates once
	summary, err = service.UpdateConditions("c1", 1, 3, 3)
	if err != nil {
		t.Fatalf("UpdateConditions failed: %v", err)
	}
	if !summary.ConditionsMet {
		t.Error("conditions must be met at threshold")
	}
	if n := countNotifications(t, db, "c1"); n != welcome+1 {
		t.Errorf("notifications after qualifying = %d, want %d", n, welcome+1)
	}

	// Monotonic: dropping counters afterwards keeps the latch and emits no
	// further congratulation
	summary, err = service.UpdateConditions("c1", 0, 0, 0)
	if err != nil {
		t.Fatalf("UpdateConditions failed: %v", err)
	}
	if !summary.ConditionsMet {
		t.Error("conditionsMet latch must survive lower counters")
	}
	if n := countNotifications(t, db, "c1"); n != welcome+1 {
		t.Errorf("notifications after downgrade = %d, want %d", n, welcome+1)
	}
}

func TestUpdateConditionsRejections(t *testing.T) {
	db := setupTestDB(t)
	service := NewCreatorService(db)

	if _, err := service.UpdateConditions("ghost", 1, 3, 3); err != ErrCreatorNotFound {
		t.Errorf("unknown creator: err = %v, want ErrCreatorNotFound", err)
	}

	// Force a non-early-bird creator
	if _, err := service.Register("plain", "plain", "p@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := db.Model(&models.Creator{}).Where("id = ?", "plain").
		Update("is_early_bird", false).Error; err != nil {
		t.Fatalf("failed to downgrade creator: %v", err)
	}
	if _, err := service.UpdateConditions("plain", 1, 3, 3); err != ErrNotEarlyBird {
		t.Errorf("non early bird: err = %v, want ErrNotEarlyBird", err)
	}

	// Expired window
	if _, err := service.Register("late", "late", "l@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	backdateCreator(t, db, "late", time.Now().Add(-11*24*time.Hour))
	if _, err := service.UpdateConditions("late", 1, 3, 3); err != ErrWindowExpired {
		t.Errorf("expired window: err = %v, want ErrWindowExpired", err)
	}
}

func TestGetStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewCreatorService(db)

	if _, err := service.Register("c1", "c1", "c1@example.com", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	status, err := service.GetStatus("c1")
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.Tier != "pending" || status.SharePercent != 70 {
		t.Errorf("fresh early bird: tier=%s share=%d", status.Tier, status.SharePercent)
	}

	if _, err := service.UpdateConditions("c1", 2, 3, 4); err != nil {
		t.Fatalf("UpdateConditions failed: %v", err)
	}

	status, err = service.GetStatus("c1")
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.Tier != "qualified" || status.SharePercent != 90 {
		t.Errorf("qualified bonus creator: tier=%s share=%d", status.Tier, status.SharePercent)
	}

	if _, err := service.GetStatus("nope"); err != ErrCreatorNotFound {
		t.Errorf("unknown creator: err = %v, want ErrCreatorNotFound", err)
	}
}
