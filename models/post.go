package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/utils"
)

// RatingMin and RatingMax bound the rating of a post, inclusive.
const (
	RatingMin = 0
	RatingMax = 5
)

// Post is a travel review written by exactly one user. The owner is bound at
// creation time and never changes.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Location  string    `gorm:"size:255;not null" json:"location"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null" json:"rating"`
	OwnerID   uint      `gorm:"index;not null" json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// Validate enforces the review invariants at the persistence boundary:
// required text fields and the rating range.
func (p *Post) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(p.Location) == "" {
		fields["location"] = "location is required"
	}
	if strings.TrimSpace(p.Content) == "" {
		fields["content"] = "content is required"
	}
	if p.Rating < RatingMin || p.Rating > RatingMax {
		fields["rating"] = "rating must be between 0 and 5"
	}
	if p.OwnerID == 0 {
		fields["owner"] = "owner is required"
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}

// BeforeSave runs validation on both inserts and full saves.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
