package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"creator-platform/internal/auth"
	"creator-platform/internal/models"
)

// AuthService handles signup, login and OAuth account provisioning
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Signup creates a password account and returns its signed token. Unknown
// roles fall back to "user".
func (s *AuthService) Signup(email, password, role string) (*models.User, string, error) {
	if !models.ValidRole(role) {
		role = models.RoleUser
	}

	var existing int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("User signed up: email=%s role=%s", email, role)
	return &user, token, nil
}

// Login verifies a password account and returns its signed token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Password == "" || !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return &user, token, nil
}

// OAuthLogin finds or creates the account for a provider-verified email and
// returns its signed token. New accounts carry no password and the requested
// role; existing accounts keep the role they were created with.
func (s *AuthService) OAuthLogin(email, requestedRole string) (*models.User, string, error) {
	if !models.ValidRole(requestedRole) {
		requestedRole = models.RoleUser
	}

	var user models.User
	err := s.db.First(&user, "email = ?", email).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: email,
			Role:  requestedRole,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("OAuth user created: email=%s role=%s", email, requestedRole)
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return &user, token, nil
}
