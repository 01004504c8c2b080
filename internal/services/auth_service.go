// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,strong_password"`
	FullName    string          `json:"full_name" validate:"required,min=2,max=100"`
	UserType    models.UserType `json:"user_type" validate:"required,user_role"`
	PhoneNumber string          `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Location    string          `json:"location,omitempty" validate:"omitempty,max=200"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
}

// UpdateProfileRequest deliberately has no user_type field: the role is
// fixed at registration and determines route access for the account's life.
type UpdateProfileRequest struct {
	FullName    string   `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber string   `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Location    string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existingUser models.User
	if err := s.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, errors.New("email already registered")
	}

	user := &models.User{
		Email:       req.Email,
		FullName:    req.FullName,
		UserType:    req.UserType,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return user, nil
}

func (s *AuthService) SetProfilePicture(userID uuid.UUID, filename string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", filename).Error
}

// DeleteAccount removes the user and everything it owns: inventory, sales,
// customers (with their communications), disease reports and notifications.
func (s *AuthService) DeleteAccount(userID uuid.UUID) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var customerIDs []uuid.UUID
		if err := tx.Model(&models.Customer{}).Where("agrovet_id = ?", userID).
			Pluck("id", &customerIDs).Error; err != nil {
			return fmt.Errorf("failed to list customers: %w", err)
		}
		if len(customerIDs) > 0 {
			if err := tx.Where("customer_id IN ?", customerIDs).
				Delete(&models.Communication{}).Error; err != nil {
				return fmt.Errorf("failed to delete communications: %w", err)
			}
		}

		var saleIDs []uuid.UUID
		if err := tx.Model(&models.Sale{}).Where("agrovet_id = ?", userID).
			Pluck("id", &saleIDs).Error; err != nil {
			return fmt.Errorf("failed to list sales: %w", err)
		}
		if len(saleIDs) > 0 {
			if err := tx.Where("sale_id IN ?", saleIDs).
				Delete(&models.SaleItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete sale items: %w", err)
			}
		}

		for _, m := range []interface{}{
			&models.Sale{}, &models.Customer{}, &models.InventoryItem{},
		} {
			if err := tx.Where("agrovet_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete owned records: %w", err)
			}
		}
		if err := tx.Where("farmer_id = ?", userID).Delete(&models.DiseaseReport{}).Error; err != nil {
			return fmt.Errorf("failed to delete disease reports: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}

		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// ListAgrovets returns the public directory of active agrovet accounts.
func (s *AuthService) ListAgrovets() ([]models.User, error) {
	return s.listActiveByType(models.UserTypeAgrovet)
}

// ListFarmers is the extension officers' directory of active farmers.
func (s *AuthService) ListFarmers() ([]models.User, error) {
	return s.listActiveByType(models.UserTypeFarmer)
}

func (s *AuthService) listActiveByType(userType models.UserType) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("user_type = ? AND is_active = ?", userType, true).
		Order("full_name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.ID,
		user.Email,
		string(user.UserType),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
