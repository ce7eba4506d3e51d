package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
)

const defaultRankingLimit = 50

// RankingService maintains and serves the monthly leaderboards.
type RankingService interface {
	List(ctx context.Context, scope string, limit int) ([]dto.RankingResponse, error)
	Rollover(ctx context.Context) error
	// Start runs the hourly rollover check until the context is cancelled.
	Start(ctx context.Context)
}

type rankingService struct {
	rankings repository.RankingRepository
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRankingService constructs a RankingService instance.
func NewRankingService(rankings repository.RankingRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RankingService {
	return &rankingService{
		rankings: rankings,
		users:    users,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "ranking_service").Logger(),
		now:      time.Now,
	}
}

// ComputeRankings assigns national, school and province ranks to a snapshot
// of users already ordered by total score descending. The national rank is
// the 1-based position in that order; school and province ranks are running
// tallies keyed by the group value over the same traversal, so within each
// group the descending score order is preserved.
func ComputeRankings(users []models.User, month, year int) []models.MonthlyRanking {
	rankings := make([]models.MonthlyRanking, 0, len(users))
	schoolTally := map[string]int{}
	provinceTally := map[string]int{}
	nationalRank := 0

	for _, user := range users {
		if !user.RankingEligible() {
			continue
		}

		school := *user.School
		province := *user.Province
		schoolTally[school]++
		provinceTally[province]++
		nationalRank++

		rankings = append(rankings, models.MonthlyRanking{
			UserID:       user.ID,
			School:       school,
			Province:     province,
			Score:        user.TotalScore,
			SchoolRank:   schoolTally[school],
			ProvinceRank: provinceTally[province],
			NationalRank: nationalRank,
			Month:        month,
			Year:         year,
		})
	}

	return rankings
}

func (s *rankingService) List(ctx context.Context, scope string, limit int) ([]dto.RankingResponse, error) {
	if !models.ValidRankingScope(scope) {
		return nil, fmt.Errorf("unknown ranking scope: %s", scope)
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}

	now := s.now()
	month := int(now.Month())
	year := now.Year()
	cacheKey := fmt.Sprintf("rankings:%s:%d-%d:%d", scope, year, month, limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response []dto.RankingResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read rankings cache")
		}
	}

	rankings, err := s.rankings.ListForMonth(ctx, scope, month, year, limit)
	if err != nil {
		return nil, err
	}

	response := dto.NewRankingResponseSlice(rankings)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store rankings cache")
			}
		}
	}

	return response, nil
}

// Rollover snapshots the current scores into monthly ranking rows, replacing
// any rows already written for this (month, year), and resets every user's
// total score. The swap happens inside one repository transaction.
func (s *rankingService) Rollover(ctx context.Context) error {
	now := s.now()
	month := int(now.Month())
	year := now.Year()

	users, err := s.users.ListRankingEligible(ctx)
	if err != nil {
		return fmt.Errorf("list ranking users: %w", err)
	}

	rankings := ComputeRankings(users, month, year)

	if err := s.rankings.ReplaceSnapshot(ctx, month, year, rankings); err != nil {
		return fmt.Errorf("replace ranking snapshot: %w", err)
	}

	s.logger.Info().
		Int("month", month).
		Int("year", year).
		Int("rows", len(rankings)).
		Msg("monthly rankings rolled over")

	return nil
}

func (s *rankingService) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.now()
			if now.Day() != 1 || now.Hour() != 0 {
				continue
			}
			if err := s.Rollover(ctx); err != nil {
				s.logger.Error().Err(err).Msg("monthly ranking rollover failed")
			}
		}
	}
}
