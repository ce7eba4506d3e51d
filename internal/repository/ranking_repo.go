package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// RankingRepository persists monthly leaderboard snapshots.
type RankingRepository interface {
	ListForMonth(ctx context.Context, scope string, month, year, limit int) ([]models.MonthlyRanking, error)
	// ReplaceSnapshot swaps the rows for (month, year) with the provided set
	// and zeroes every user's total score. The delete, insert and reset run
	// in one transaction so a failed rollover leaves nothing half-applied.
	ReplaceSnapshot(ctx context.Context, month, year int, rankings []models.MonthlyRanking) error
}

type rankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository instantiates the repository.
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) ListForMonth(ctx context.Context, scope string, month, year, limit int) ([]models.MonthlyRanking, error) {
	var column string
	switch scope {
	case models.RankingScopeSchool:
		column = "school_rank"
	case models.RankingScopeProvince:
		column = "province_rank"
	case models.RankingScopeNational:
		column = "national_rank"
	default:
		return nil, fmt.Errorf("unknown ranking scope: %s", scope)
	}

	var rankings []models.MonthlyRanking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("month = ? AND year = ?", month, year).
		Order(column + " ASC").
		Limit(limit).
		Find(&rankings).Error; err != nil {
		return nil, err
	}

	return rankings, nil
}

func (r *rankingRepository) ReplaceSnapshot(ctx context.Context, month, year int, rankings []models.MonthlyRanking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.MonthlyRanking{}, "month = ? AND year = ?", month, year).Error; err != nil {
			return err
		}

		if len(rankings) > 0 {
			if err := tx.Create(&rankings).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).
			Where("1 = 1").
			Update("total_score", 0).Error
	})
}
