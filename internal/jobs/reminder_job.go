package jobs

import (
	"log"
	"time"

	"creator-platform/internal/services"
)

// ReminderJob periodically runs the early-bird reminder sweep.
type ReminderJob struct {
	service *services.NotificationService
}

// NewReminderJob creates a new ReminderJob
func NewReminderJob(service *services.NotificationService) *ReminderJob {
	return &ReminderJob{service: service}
}

// Start begins the periodic sweep
func (j *ReminderJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		if err := j.service.SweepReminders(time.Now()); err != nil {
			log.Printf("Initial reminder sweep error: %v", err)
		}

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := j.service.SweepReminders(time.Now()); err != nil {
				log.Printf("Reminder sweep error: %v", err)
			}
		}
	}()
}
