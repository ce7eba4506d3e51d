package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// PracticeQuestionResponse is one quiz item. The correct answer and
// explanation are included: the client reveals them only after an answer.
type PracticeQuestionResponse struct {
	ID            string   `json:"id"`
	SubmissionID  string   `json:"submission_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	OrderIndex    int      `json:"order_index"`
}

// PracticeAnswerRequest carries one submitted answer label.
type PracticeAnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1,max=8"`
}

// PracticeAttemptResponse is the server-held quiz session state returned
// after every transition.
type PracticeAttemptResponse struct {
	ID               string    `json:"id"`
	SubmissionID     string    `json:"submission_id"`
	QuestionsCorrect int       `json:"questions_correct"`
	TotalQuestions   int       `json:"total_questions"`
	CurrentIndex     int       `json:"current_index"`
	ScoreAwarded     float64   `json:"score_awarded"`
	Completed        bool      `json:"completed"`
	CreatedAt        time.Time `json:"created_at"`
}

// PracticeAnswerResponse reports the outcome of a submitted answer.
type PracticeAnswerResponse struct {
	Correct             bool                    `json:"correct"`
	CorrectAnswer       string                  `json:"correct_answer"`
	Explanation         string                  `json:"explanation"`
	ReadingPauseSeconds int                     `json:"reading_pause_seconds"`
	Attempt             PracticeAttemptResponse `json:"attempt"`
}

// NewPracticeQuestionResponse converts a PracticeQuestion model into a DTO.
func NewPracticeQuestionResponse(model models.PracticeQuestion) PracticeQuestionResponse {
	return PracticeQuestionResponse{
		ID:            model.ID,
		SubmissionID:  model.SubmissionID,
		Question:      model.Question,
		Options:       model.OptionList(),
		CorrectAnswer: model.CorrectAnswer,
		Explanation:   model.Explanation,
		Difficulty:    model.Difficulty,
		OrderIndex:    model.OrderIndex,
	}
}

// NewPracticeQuestionResponseSlice converts question models into DTOs.
func NewPracticeQuestionResponseSlice(questions []models.PracticeQuestion) []PracticeQuestionResponse {
	responses := make([]PracticeQuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewPracticeQuestionResponse(question))
	}

	return responses
}

// NewPracticeAttemptResponse converts a PracticeAttempt model into a DTO.
func NewPracticeAttemptResponse(model models.PracticeAttempt) PracticeAttemptResponse {
	return PracticeAttemptResponse{
		ID:               model.ID,
		SubmissionID:     model.SubmissionID,
		QuestionsCorrect: model.QuestionsCorrect,
		TotalQuestions:   model.TotalQuestions,
		CurrentIndex:     model.CurrentIndex,
		ScoreAwarded:     model.ScoreAwarded,
		Completed:        model.Completed,
		CreatedAt:        model.CreatedAt,
	}
}
