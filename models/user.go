package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/utils"
)

// User represents a registered account. Credentials are stored as bcrypt
// hashes only and are never serialized, on any path.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	SessionToken string    `gorm:"size:512" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:OwnerID" json:"-"`
}

// Public returns the externally visible projection of a user. Every boundary
// that responds with a user goes through this, so the hash and session token
// stay internal even if struct tags change.
func (u User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Validate enforces account invariants at the persistence boundary.
func (u *User) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(u.Email) == "" {
		fields["email"] = "email is required"
	}
	if u.PasswordHash == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}

// BeforeSave normalizes the email and runs validation before insert or update.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return u.Validate()
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
