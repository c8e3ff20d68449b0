package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/config"
	"github.com/iamatos3/roamer-api/models"
	"github.com/iamatos3/roamer-api/utils"
)

// AuthController handles registration, credential verification, and session
// lifecycle.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates a local account with a bcrypt-hashed credential.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Credentials struct {
			Email                string `json:"email"`
			Password             string `json:"password"`
			PasswordConfirmation string `json:"password_confirmation"`
		} `json:"credentials"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, utils.NewBadRequestError("invalid request payload"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Credentials.Email))
	fields := map[string]string{}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(req.Credentials.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if req.Credentials.Password != req.Credentials.PasswordConfirmation {
		fields["password_confirmation"] = "passwords do not match"
	}
	if len(fields) > 0 {
		utils.RespondError(ctx, utils.NewValidationError(fields))
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondError(ctx, utils.NewValidationError(map[string]string{"email": "email already taken"}))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(req.Credentials.Password)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user := models.User{Email: email, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": user.Public()})
}

// Login verifies credentials, issues a bearer token, and records it as the
// user's current session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"credentials"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, utils.NewBadRequestError("invalid request payload"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Credentials.Email))
	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.RespondError(ctx, utils.NewUnauthorizedError("invalid email or password"))
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Credentials.Password) {
		utils.RespondError(ctx, utils.NewUnauthorizedError("invalid email or password"))
		return
	}

	ttl := time.Duration(config.Get().TokenTTLHrs) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user.SessionToken = token
	if err := a.db.Model(&user).Update("session_token", token).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user.Public()})
}

// Logout clears the stored session token and revokes the presented bearer
// token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	user, token, ok := a.currentSession(ctx)
	if !ok {
		return
	}

	if err := a.db.Model(&user).Update("session_token", "").Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		utils.BlacklistToken(token, claims.ExpiresAt.Time)
	}

	ctx.Status(http.StatusNoContent)
}

// ChangePassword swaps the stored hash after verifying the old credential and
// rotates the session token away, forcing a fresh login.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	var req struct {
		Passwords struct {
			Old string `json:"old"`
			New string `json:"new"`
		} `json:"passwords"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, utils.NewBadRequestError("invalid request payload"))
		return
	}

	user, token, ok := a.currentSession(ctx)
	if !ok {
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Passwords.Old) {
		utils.RespondError(ctx, utils.NewUnauthorizedError("invalid email or password"))
		return
	}
	if len(req.Passwords.New) < 8 {
		utils.RespondError(ctx, utils.NewValidationError(map[string]string{"new": "password must be at least 8 characters"}))
		return
	}

	hash, err := utils.HashPassword(req.Passwords.New)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	updates := map[string]interface{}{"password_hash": hash, "session_token": ""}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		utils.BlacklistToken(token, claims.ExpiresAt.Time)
	}

	ctx.Status(http.StatusNoContent)
}

// Me returns the authenticated user's public profile.
func (a *AuthController) Me(ctx *gin.Context) {
	user, _, ok := a.currentSession(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// currentSession loads the principal set by the auth middleware along with
// the presented token. It writes the 401 itself when the context is missing
// a principal.
func (a *AuthController) currentSession(ctx *gin.Context) (models.User, string, bool) {
	userID, ok := principalID(ctx)
	if !ok {
		utils.RespondError(ctx, utils.NewUnauthorizedError("unauthorized"))
		return models.User{}, "", false
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.RespondError(ctx, utils.NewUnauthorizedError("unknown principal"))
		return models.User{}, "", false
	}

	token := ""
	if parts := strings.SplitN(ctx.GetHeader("Authorization"), " ", 2); len(parts) == 2 {
		token = strings.TrimSpace(parts[1])
	}
	return user, token, true
}
