package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// AISettingsRepository stores the singleton AI model configuration row.
type AISettingsRepository interface {
	Get(ctx context.Context) (models.AISettings, error)
	Upsert(ctx context.Context, settings models.AISettings) error
}

type aiSettingsRepository struct {
	db *gorm.DB
}

// NewAISettingsRepository instantiates the repository.
func NewAISettingsRepository(db *gorm.DB) AISettingsRepository {
	return &aiSettingsRepository{db: db}
}

func (r *aiSettingsRepository) Get(ctx context.Context) (models.AISettings, error) {
	var settings models.AISettings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return models.AISettings{}, err
	}

	return settings, nil
}

func (r *aiSettingsRepository) Upsert(ctx context.Context, settings models.AISettings) error {
	var existing models.AISettings
	err := r.db.WithContext(ctx).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return r.db.WithContext(ctx).Create(&settings).Error
	case err != nil:
		return err
	default:
		existing.DeepseekEnabled = settings.DeepseekEnabled
		existing.GPTEnabled = settings.GPTEnabled
		existing.GemmaEnabled = settings.GemmaEnabled
		existing.GPTOssEnabled = settings.GPTOssEnabled
		return r.db.WithContext(ctx).Save(&existing).Error
	}
}
