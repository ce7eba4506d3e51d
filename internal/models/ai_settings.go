package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model choices selectable through the admin settings.
const (
	AIModelDeepseek = "deepseek"
	AIModelGPT      = "gpt"
	AIModelGemma    = "gemma"
	AIModelGPTOss   = "gptOss"
)

// AISettings is the singleton row holding the admin model toggles. The
// boolean columns carry no database defaults on purpose: a false toggle
// must be stored as false, not replaced by a column default on insert.
type AISettings struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	DeepseekEnabled bool      `gorm:"not null" json:"deepseek_enabled"`
	GPTEnabled      bool      `gorm:"not null" json:"gpt_enabled"`
	GemmaEnabled    bool      `gorm:"not null" json:"gemma_enabled"`
	GPTOssEnabled   bool      `gorm:"not null" json:"gpt_oss_enabled"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (s *AISettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ActiveModel resolves the enabled flags into a single model choice. The
// admin UI keeps one flag on at a time; when several are set the first in
// the fixed order deepseek, gpt, gemma, gptOss wins. Returns "" when every
// flag is off.
func (s AISettings) ActiveModel() string {
	switch {
	case s.DeepseekEnabled:
		return AIModelDeepseek
	case s.GPTEnabled:
		return AIModelGPT
	case s.GemmaEnabled:
		return AIModelGemma
	case s.GPTOssEnabled:
		return AIModelGPTOss
	default:
		return ""
	}
}
