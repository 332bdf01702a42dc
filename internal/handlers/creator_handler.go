package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-platform/internal/blockchain"
	"creator-platform/internal/services"
)

// CreatorHandler handles creator endpoints
type CreatorHandler struct {
	creatorService *services.CreatorService
}

// NewCreatorHandler creates a new CreatorHandler
func NewCreatorHandler(creatorService *services.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		creatorService: creatorService,
	}
}

// ListCreators returns all creators
// GET /api/creators
func (h *CreatorHandler) ListCreators(c *gin.Context) {
	creators, err := h.creatorService.List()
	if err != nil {
		log.Printf("Failed to list creators: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch creators"})
		return
	}

	c.JSON(http.StatusOK, creators)
}

// Register registers a creator and assigns the early-bird tier
// POST /api/creators/register
func (h *CreatorHandler) Register(c *gin.Context) {
	var req struct {
		ID            string  `json:"id" binding:"required"`
		Username      string  `json:"username" binding:"required"`
		Email         string  `json:"email" binding:"required"`
		WalletAddress *string `json:"walletAddress"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, username and email are required"})
		return
	}

	if req.WalletAddress != nil && *req.WalletAddress != "" &&
		!blockchain.ValidateWalletAddress(*req.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
		return
	}

	result, err := h.creatorService.Register(req.ID, req.Username, req.Email, req.WalletAddress)
	if err != nil {
		log.Printf("Registration failed for %s: %v", req.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "creator registered successfully",
		"isEarlyBird":     result.IsEarlyBird,
		"earlyBirdBonus":  result.EarlyBirdBonus,
		"creatorPosition": result.Position,
	})
}

// UpdateConditions updates the early-bird condition counters
// PUT /api/creators/:id/conditions
func (h *CreatorHandler) UpdateConditions(c *gin.Context) {
	creatorID := c.Param("id")

	var req struct {
		PromoPost     int `json:"promoPost"`
		FreeVideos    int `json:"freeVideos"`
		PremiumVideos int `json:"premiumVideos"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.creatorService.UpdateConditions(creatorID, req.PromoPost, req.FreeVideos, req.PremiumVideos)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCreatorNotFound), errors.Is(err, services.ErrConditionsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotEarlyBird), errors.Is(err, services.ErrWindowExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to update conditions for %s: %v", creatorID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update conditions"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "conditions updated",
		"conditions": summary,
	})
}

// GetStatus returns the current tier/window/share snapshot
// GET /api/creators/:id/status
func (h *CreatorHandler) GetStatus(c *gin.Context) {
	creatorID := c.Param("id")

	status, err := h.creatorService.GetStatus(creatorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCreatorNotFound), errors.Is(err, services.ErrConditionsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to fetch status for %s: %v", creatorID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch status"})
		}
		return
	}

	c.JSON(http.StatusOK, status)
}
