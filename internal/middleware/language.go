package middleware

import (
	"github.com/gin-gonic/gin"

	"grosik/internal/models"
	"grosik/internal/services"
)

// LanguageKey is the gin context key holding the request's resolved language.
const LanguageKey = "language"

// UserLanguage returns a middleware that resolves the authenticated user's
// preferred language into the request context. The language lives only on
// this request's context, never in process-wide state, so concurrent
// requests from users with different preferences cannot bleed into each
// other. Must run after AuthMiddleware.
func UserLanguage(profiles services.ProfileServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := models.DefaultLanguage

		if userID, exists := c.Get("userID"); exists {
			if profile, err := profiles.GetProfile(userID.(uint)); err == nil {
				lang = profile.Language
			}
		}

		c.Set(LanguageKey, lang)
		c.Writer.Header().Set("Content-Language", string(lang))
		c.Next()
	}
}

// RequestLanguage returns the language resolved for this request.
func RequestLanguage(c *gin.Context) models.Language {
	if v, exists := c.Get(LanguageKey); exists {
		if lang, ok := v.(models.Language); ok {
			return lang
		}
	}
	return models.DefaultLanguage
}
