package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "grosik/internal/errors"
	"grosik/internal/models"
)

// profileService handles user display preferences.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile returns the user's profile, creating one with defaults for
// accounts that predate profile creation at registration.
func (s *profileService) GetProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	profile = models.UserProfile{
		UserID:   userID,
		Currency: models.DefaultCurrency,
		Language: models.DefaultLanguage,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile sets the user's currency and/or language. Codes outside the
// supported sets are rejected with a per-field validation error.
func (s *profileService) UpdateProfile(userID uint, currency, language *string) (*models.UserProfile, error) {
	fields := make(map[string]string)
	if currency != nil && !models.Currency(*currency).Valid() {
		fields["currency"] = "unsupported currency code"
	}
	if language != nil && !models.Language(*language).Valid() {
		fields["language"] = "unsupported language code"
	}
	if len(fields) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, fields)
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if currency != nil {
		updates["currency"] = models.Currency(*currency)
	}
	if language != nil {
		updates["language"] = models.Language(*language)
	}
	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return profile, nil
}
