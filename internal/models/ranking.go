package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leaderboard scopes accepted by the rankings endpoint.
const (
	RankingScopeSchool   = "school"
	RankingScopeProvince = "province"
	RankingScopeNational = "national"
)

// MonthlyRanking is an immutable leaderboard snapshot row for one user in
// one (month, year). Rows for a month are replaced wholesale at rollover.
type MonthlyRanking struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	School       string    `gorm:"size:255;not null" json:"school"`
	Province     string    `gorm:"size:255;not null" json:"province"`
	Score        float64   `gorm:"not null" json:"score"`
	SchoolRank   int       `json:"school_rank"`
	ProvinceRank int       `json:"province_rank"`
	NationalRank int       `json:"national_rank"`
	Month        int       `gorm:"not null;index:idx_rankings_period" json:"month"`
	Year         int       `gorm:"not null;index:idx_rankings_period" json:"year"`
	CreatedAt    time.Time `json:"created_at"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *MonthlyRanking) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ValidRankingScope reports whether the scope names a known leaderboard.
func ValidRankingScope(scope string) bool {
	switch scope {
	case RankingScopeSchool, RankingScopeProvince, RankingScopeNational:
		return true
	default:
		return false
	}
}
