// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

// UserService owns the language/currency preferences the formatting layer
// reads. Preferences are the only mutable part of a user profile.
type UserService struct {
	db        *gorm.DB
	publisher *realtime.Publisher
}

type UpdateSettingsRequest struct {
	Language models.Language `json:"language" validate:"required"`
	Currency models.Currency `json:"currency" validate:"required"`
}

func NewUserService(db *gorm.DB, publisher *realtime.Publisher) *UserService {
	return &UserService{
		db:        db,
		publisher: publisher,
	}
}

func (s *UserService) GetSettings(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *UpdateSettingsRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Language.Valid() {
		return nil, ErrInvalidLanguage
	}
	if !req.Currency.Valid() {
		return nil, ErrInvalidCurrency
	}

	user, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"language": req.Language,
		"currency": req.Currency,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	user.Language = req.Language
	user.Currency = req.Currency

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "settings",
		Action:     "updated",
		RecordID:   userID.String(),
	})

	return user, nil
}
