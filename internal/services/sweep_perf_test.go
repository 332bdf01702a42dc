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

// BenchmarkSweepReminders measures a full reminder sweep over a populated
// pending set. Uses the pure-Go sqlite driver so the benchmark runs without
// cgo.
func BenchmarkSweepReminders(b *testing.B) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		b.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Creator{}, &models.CreatorConditions{}, &models.Notification{}); err != nil {
		b.Fatalf("failed to migrate database: %v", err)
	}

	joined := time.Now().Add(-3 * 24 * time.Hour)
	for i := 0; i < 500; i++ {
		id := fmt.Sprintf("bench-%d", i)
		db.Create(&models.Creator{
			ID:          id,
			Username:    id,
			Email:       id + "@example.com",
			IsEarlyBird: true,
			JoinedAt:    joined,
		})
		db.Create(&models.CreatorConditions{CreatorID: id})
	}

	service := NewNotificationService(db)

	// First iteration writes 500 reminders; later iterations measure the
	// scan plus the same-day dedup path.
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := service.SweepReminders(time.Now()); err != nil {
			b.Fatalf("SweepReminders failed: %v", err)
		}
	}
}
