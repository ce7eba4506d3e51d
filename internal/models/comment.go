package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply on a forum post. AI-generated replies carry no user.
type Comment struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID       string    `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID       *string   `gorm:"type:uuid" json:"user_id"`
	ParentID     *string   `gorm:"type:uuid" json:"parent_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ImageURL     string    `gorm:"size:512" json:"image_url"`
	IsAIResponse bool      `gorm:"default:false" json:"is_ai_response"`
	CreatedAt    time.Time `json:"created_at"`
	User         *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
