package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a 1-5 star vote on a post or a comment.
type Rating struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    *string   `gorm:"type:uuid;index" json:"post_id"`
	CommentID *string   `gorm:"type:uuid;index" json:"comment_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Like marks that a user liked a post or a comment. Liking again removes it.
type Like struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    *string   `gorm:"type:uuid;index" json:"post_id"`
	CommentID *string   `gorm:"type:uuid;index" json:"comment_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
