package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "grosik/internal/errors"
	"grosik/internal/services"
)

// ProfileHandler handles user settings requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents the settings update payload. Both fields
// are optional; absent fields keep their current value.
type UpdateProfileRequest struct {
	Currency *string `json:"currency" binding:"omitempty,currency_code"`
	Language *string `json:"language" binding:"omitempty,language_code"`
}

// ProfileResponse represents the user's settings in the response.
type ProfileResponse struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`
	Language       string `json:"language"`
}

// GetSettings handles retrieving the user's settings
// @Summary     Get settings
// @Description Get the authenticated user's currency and language preferences
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "Current settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *ProfileHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": ProfileResponse{
		Currency:       string(profile.Currency),
		CurrencySymbol: profile.CurrencySymbol(),
		Language:       string(profile.Language),
	}})
}

// UpdateSettings handles updating the user's settings
// @Summary     Update settings
// @Description Update the authenticated user's currency and/or language preference
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Settings to change"
// @Success     200 {object} ProfileResponse "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid currency or language code"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, req.Currency, req.Language)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": ProfileResponse{
		Currency:       string(profile.Currency),
		CurrencySymbol: profile.CurrencySymbol(),
		Language:       string(profile.Language),
	}})
}
