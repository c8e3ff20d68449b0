package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/models"
	"github.com/iamatos3/roamer-api/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserEmailKey stores the authenticated user's email inside Gin context.
	ContextUserEmailKey = "user_email"
)

// AuthRequired resolves the bearer token to an authenticated principal or
// fails the request with 401 before any handler runs. A token is valid only
// while it matches the user's stored session token, so sign-out and password
// rotation revoke it immediately.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(ctx, utils.NewUnauthorizedError("authorization header missing"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.RespondError(ctx, utils.NewUnauthorizedError("invalid authorization header format"))
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.RespondError(ctx, utils.NewUnauthorizedError("empty bearer token"))
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(ctx, utils.NewUnauthorizedError("token revoked"))
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(ctx, utils.NewUnauthorizedError("invalid token"))
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.RespondError(ctx, utils.NewUnauthorizedError("unknown principal"))
			return
		}
		if user.SessionToken != tokenString {
			utils.RespondError(ctx, utils.NewUnauthorizedError("session expired"))
			return
		}

		ctx.Set(ContextUserIDKey, user.ID)
		ctx.Set(ContextUserEmailKey, user.Email)
		ctx.Next()
	}
}
