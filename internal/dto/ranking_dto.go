package dto

import (
	"github.com/limva/limva-api/internal/models"
)

// RankingResponse is one leaderboard row.
type RankingResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	School       string   `json:"school"`
	Province     string   `json:"province"`
	Score        float64  `json:"score"`
	SchoolRank   int      `json:"school_rank"`
	ProvinceRank int      `json:"province_rank"`
	NationalRank int      `json:"national_rank"`
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	User         UserLite `json:"user"`
}

// NewRankingResponse converts a MonthlyRanking model into a DTO.
func NewRankingResponse(model models.MonthlyRanking) RankingResponse {
	response := RankingResponse{
		ID:           model.ID,
		UserID:       model.UserID,
		School:       model.School,
		Province:     model.Province,
		Score:        model.Score,
		SchoolRank:   model.SchoolRank,
		ProvinceRank: model.ProvinceRank,
		NationalRank: model.NationalRank,
		Month:        model.Month,
		Year:         model.Year,
	}

	if model.User.ID != "" {
		response.User = NewUserLite(model.User)
	}

	return response
}

// NewRankingResponseSlice converts ranking models into DTOs.
func NewRankingResponseSlice(rankings []models.MonthlyRanking) []RankingResponse {
	responses := make([]RankingResponse, 0, len(rankings))
	for _, ranking := range rankings {
		responses = append(responses, NewRankingResponse(ranking))
	}

	return responses
}
