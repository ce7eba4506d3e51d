package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// AISettingsUpdateRequest carries the four admin model toggles.
type AISettingsUpdateRequest struct {
	DeepseekEnabled bool `json:"deepseek_enabled"`
	GPTEnabled      bool `json:"gpt_enabled"`
	GemmaEnabled    bool `json:"gemma_enabled"`
	GPTOssEnabled   bool `json:"gpt_oss_enabled"`
}

// AISettingsResponse exposes the toggles plus the resolved active model.
type AISettingsResponse struct {
	DeepseekEnabled bool      `json:"deepseek_enabled"`
	GPTEnabled      bool      `json:"gpt_enabled"`
	GemmaEnabled    bool      `json:"gemma_enabled"`
	GPTOssEnabled   bool      `json:"gpt_oss_enabled"`
	ActiveModel     string    `json:"active_model"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAISettingsResponse converts an AISettings model into a DTO.
func NewAISettingsResponse(model models.AISettings) AISettingsResponse {
	return AISettingsResponse{
		DeepseekEnabled: model.DeepseekEnabled,
		GPTEnabled:      model.GPTEnabled,
		GemmaEnabled:    model.GemmaEnabled,
		GPTOssEnabled:   model.GPTOssEnabled,
		ActiveModel:     model.ActiveModel(),
		UpdatedAt:       model.UpdatedAt,
	}
}
