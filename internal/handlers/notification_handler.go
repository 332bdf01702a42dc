package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"creator-platform/internal/services"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// SendNotification appends a notification for a creator
// POST /api/notifications/send
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req struct {
		CreatorID string `json:"creatorId" binding:"required"`
		Message   string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creatorId and message are required"})
		return
	}

	if err := h.notificationService.Send(req.CreatorID, req.Message); err != nil {
		if errors.Is(err, services.ErrCreatorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to send notification to %s: %v", req.CreatorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "notification sent successfully"})
}

// ListNotifications returns a creator's notifications, newest first
// GET /api/creators/:id/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	creatorID := c.Param("id")

	notifications, err := h.notificationService.ListForCreator(creatorID)
	if err != nil {
		if errors.Is(err, services.ErrCreatorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to list notifications for %s: %v", creatorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// SendReminders triggers the early-bird reminder sweep manually
// GET /api/notifications/send-reminders
func (h *NotificationHandler) SendReminders(c *gin.Context) {
	if err := h.notificationService.SweepReminders(time.Now()); err != nil {
		log.Printf("Reminder sweep failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "early bird reminders triggered"})
}
