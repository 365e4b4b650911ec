// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"grosik/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("language_code", validateLanguageCode)
	}
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return models.Currency(fl.Field().String()).Valid()
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	return models.Language(fl.Field().String()).Valid()
}
