package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/pkg/openrouter"
)

// AISettingsService manages the admin AI model configuration.
type AISettingsService interface {
	ModelProvider
	Get(ctx context.Context) (dto.AISettingsResponse, error)
	Update(ctx context.Context, payload dto.AISettingsUpdateRequest) (dto.AISettingsResponse, error)
}

type aiSettingsService struct {
	repo   repository.AISettingsRepository
	logger zerolog.Logger
}

// NewAISettingsService constructs an AISettingsService instance.
func NewAISettingsService(repo repository.AISettingsRepository, logger zerolog.Logger) AISettingsService {
	return &aiSettingsService{
		repo:   repo,
		logger: logger.With().Str("component", "ai_settings_service").Logger(),
	}
}

func (s *aiSettingsService) Get(ctx context.Context) (dto.AISettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Defaults before an admin ever saved the settings.
			return dto.NewAISettingsResponse(models.AISettings{
				DeepseekEnabled: true,
				GemmaEnabled:    true,
				GPTOssEnabled:   true,
			}), nil
		}
		return dto.AISettingsResponse{}, err
	}

	return dto.NewAISettingsResponse(settings), nil
}

func (s *aiSettingsService) Update(ctx context.Context, payload dto.AISettingsUpdateRequest) (dto.AISettingsResponse, error) {
	settings := models.AISettings{
		DeepseekEnabled: payload.DeepseekEnabled,
		GPTEnabled:      payload.GPTEnabled,
		GemmaEnabled:    payload.GemmaEnabled,
		GPTOssEnabled:   payload.GPTOssEnabled,
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return dto.AISettingsResponse{}, err
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		return dto.AISettingsResponse{}, err
	}

	s.logger.Info().Str("active_model", stored.ActiveModel()).Msg("ai settings updated")

	return dto.NewAISettingsResponse(stored), nil
}

func (s *aiSettingsService) ActiveModelID(ctx context.Context) (string, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No saved row yet: the default configuration enables DeepSeek.
			return openrouter.ModelID(models.AIModelDeepseek), nil
		}
		return "", err
	}

	choice := settings.ActiveModel()
	if choice == "" {
		return "", ErrAIUnavailable
	}

	return openrouter.ModelID(choice), nil
}
