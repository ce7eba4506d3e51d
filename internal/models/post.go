package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLifetime is how long a forum post stays visible before expiring.
const PostLifetime = 7 * 24 * time.Hour

// Post is a forum question or discussion entry.
type Post struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	IsExpired bool      `gorm:"default:false" json:"is_expired"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}

// BeforeCreate assigns the UUID key and default expiry window.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(PostLifetime)
	}
	return nil
}
