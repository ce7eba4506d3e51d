package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/pkg/openrouter"
)

func TestAISettingsDefaultsBeforeFirstSave(t *testing.T) {
	db := openTestDB(t)
	svc := NewAISettingsService(repository.NewAISettingsRepository(db), testLogger())

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.True(t, settings.DeepseekEnabled)
	require.False(t, settings.GPTEnabled)
	require.Equal(t, models.AIModelDeepseek, settings.ActiveModel)

	model, err := svc.ActiveModelID(context.Background())
	require.NoError(t, err)
	require.Equal(t, openrouter.ModelDeepseek, model)
}

func TestAISettingsUpdatePersistsSingleton(t *testing.T) {
	db := openTestDB(t)
	svc := NewAISettingsService(repository.NewAISettingsRepository(db), testLogger())

	updated, err := svc.Update(context.Background(), dto.AISettingsUpdateRequest{GemmaEnabled: true})
	require.NoError(t, err)
	require.False(t, updated.DeepseekEnabled)
	require.Equal(t, models.AIModelGemma, updated.ActiveModel)

	// A second update overwrites the same row.
	updated, err = svc.Update(context.Background(), dto.AISettingsUpdateRequest{GPTEnabled: true})
	require.NoError(t, err)
	require.Equal(t, models.AIModelGPT, updated.ActiveModel)

	var count int64
	require.NoError(t, db.Model(&models.AISettings{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestActiveModelPriorityOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewAISettingsService(repository.NewAISettingsRepository(db), testLogger())

	// All flags on: DeepSeek wins.
	_, err := svc.Update(context.Background(), dto.AISettingsUpdateRequest{
		DeepseekEnabled: true,
		GPTEnabled:      true,
		GemmaEnabled:    true,
		GPTOssEnabled:   true,
	})
	require.NoError(t, err)

	model, err := svc.ActiveModelID(context.Background())
	require.NoError(t, err)
	require.Equal(t, openrouter.ModelDeepseek, model)

	// DeepSeek off: GPT is next.
	_, err = svc.Update(context.Background(), dto.AISettingsUpdateRequest{
		GPTEnabled:    true,
		GemmaEnabled:  true,
		GPTOssEnabled: true,
	})
	require.NoError(t, err)

	model, err = svc.ActiveModelID(context.Background())
	require.NoError(t, err)
	require.Equal(t, openrouter.ModelGPT, model)
}

func TestActiveModelAllDisabled(t *testing.T) {
	db := openTestDB(t)
	svc := NewAISettingsService(repository.NewAISettingsRepository(db), testLogger())

	_, err := svc.Update(context.Background(), dto.AISettingsUpdateRequest{})
	require.NoError(t, err)

	_, err = svc.ActiveModelID(context.Background())
	require.ErrorIs(t, err, ErrAIUnavailable)
}
