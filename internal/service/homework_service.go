package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/pkg/openrouter"
)

// ErrSubmissionNotFound indicates a homework submission could not be found.
var ErrSubmissionNotFound = errors.New("homework submission not found")

const (
	analysisMaxTokens = 2000
	chatMaxTokens     = 800
)

// HomeworkService drives the AI homework checker.
type HomeworkService interface {
	Submit(ctx context.Context, userID string, payload dto.HomeworkSubmitRequest) (dto.HomeworkResponse, error)
	Get(ctx context.Context, id string) (dto.HomeworkResponse, error)
	Chat(ctx context.Context, submissionID string, payload dto.HomeworkChatRequest) (dto.HomeworkChatResponse, error)
}

type homeworkService struct {
	submissions repository.HomeworkRepository
	modelOf     ModelProvider
	gateway     AIGateway
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewHomeworkService constructs a HomeworkService instance.
func NewHomeworkService(submissions repository.HomeworkRepository, provider ModelProvider, gateway AIGateway, validate *validator.Validate, logger zerolog.Logger) HomeworkService {
	return &homeworkService{
		submissions: submissions,
		modelOf:     provider,
		gateway:     gateway,
		validator:   validate,
		logger:      logger.With().Str("component", "homework_service").Logger(),
	}
}

func (s *homeworkService) Submit(ctx context.Context, userID string, payload dto.HomeworkSubmitRequest) (dto.HomeworkResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HomeworkResponse{}, err
	}

	model, err := s.modelOf.ActiveModelID(ctx)
	if err != nil {
		return dto.HomeworkResponse{}, err
	}

	submission := models.HomeworkSubmission{
		UserID:   userID,
		Subject:  payload.Subject,
		Content:  payload.Content,
		ImageURL: payload.ImageURL,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.HomeworkResponse{}, err
	}

	answer := s.gateway.Complete(ctx, model, []openrouter.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: analysisPrompt(payload.Subject, payload.Content)},
	}, analysisMaxTokens)

	analysis := models.HomeworkAnalysis{
		Content:     answer,
		Errors:      []string{},
		Suggestions: []string{},
	}
	encoded, err := json.Marshal(analysis)
	if err != nil {
		return dto.HomeworkResponse{}, fmt.Errorf("encode analysis: %w", err)
	}

	if err := s.submissions.UpdateAnalysis(ctx, submission.ID, encoded); err != nil {
		return dto.HomeworkResponse{}, err
	}
	submission.Analysis = encoded

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("subject", submission.Subject).
		Msg("homework analyzed")

	return dto.NewHomeworkResponse(submission), nil
}

func (s *homeworkService) Get(ctx context.Context, id string) (dto.HomeworkResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkResponse{}, ErrSubmissionNotFound
		}
		return dto.HomeworkResponse{}, err
	}

	return dto.NewHomeworkResponse(submission), nil
}

func (s *homeworkService) Chat(ctx context.Context, submissionID string, payload dto.HomeworkChatRequest) (dto.HomeworkChatResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HomeworkChatResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HomeworkChatResponse{}, ErrSubmissionNotFound
		}
		return dto.HomeworkChatResponse{}, err
	}

	model, err := s.modelOf.ActiveModelID(ctx)
	if err != nil {
		return dto.HomeworkChatResponse{}, err
	}

	prompt := chatPrompt(submission.Subject, submission.Content, submission.AnalysisPayload().Content, payload.Message)
	answer := s.gateway.Complete(ctx, model, []openrouter.Message{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: prompt},
	}, chatMaxTokens)

	return dto.HomeworkChatResponse{Response: answer}, nil
}
