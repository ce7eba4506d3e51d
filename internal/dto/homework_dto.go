package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// HomeworkSubmitRequest carries homework sent for an AI check.
type HomeworkSubmitRequest struct {
	Subject  string `json:"subject" validate:"required,min=1,max=64"`
	Content  string `json:"content" validate:"required,min=1"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=512"`
}

// HomeworkAnalysisResponse mirrors the stored analysis payload.
type HomeworkAnalysisResponse struct {
	Content     string   `json:"content"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// HomeworkResponse is returned when viewing a submission.
type HomeworkResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"user_id"`
	Subject   string                   `json:"subject"`
	Content   string                   `json:"content"`
	ImageURL  string                   `json:"image_url"`
	Analysis  HomeworkAnalysisResponse `json:"analysis"`
	Score     *float64                 `json:"score"`
	CreatedAt time.Time                `json:"created_at"`
}

// HomeworkChatRequest carries a follow-up question about a submission.
type HomeworkChatRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// HomeworkChatResponse carries the AI answer to a follow-up question.
type HomeworkChatResponse struct {
	Response string `json:"response"`
}

// NewHomeworkResponse converts a HomeworkSubmission model into a DTO.
func NewHomeworkResponse(model models.HomeworkSubmission) HomeworkResponse {
	analysis := model.AnalysisPayload()

	return HomeworkResponse{
		ID:       model.ID,
		UserID:   model.UserID,
		Subject:  model.Subject,
		Content:  model.Content,
		ImageURL: model.ImageURL,
		Analysis: HomeworkAnalysisResponse{
			Content:     analysis.Content,
			Errors:      analysis.Errors,
			Suggestions: analysis.Suggestions,
		},
		Score:     model.Score,
		CreatedAt: model.CreatedAt,
	}
}
