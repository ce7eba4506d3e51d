package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a learner or admin account on the platform.
type User struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Avatar     string    `gorm:"size:512" json:"avatar"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Theme      string    `gorm:"size:32;default:default" json:"theme"`
	School     *string   `gorm:"size:255" json:"school"`
	Province   *string   `gorm:"size:255" json:"province"`
	IsAdmin    bool      `gorm:"default:false" json:"is_admin"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	TotalScore float64   `gorm:"not null;default:0" json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RankingEligible reports whether the user can appear on leaderboards.
func (u User) RankingEligible() bool {
	return u.School != nil && *u.School != "" && u.Province != nil && *u.Province != ""
}
