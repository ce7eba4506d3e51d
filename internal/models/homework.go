package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HomeworkAnalysis is the structured payload stored after the AI review.
type HomeworkAnalysis struct {
	Content     string   `json:"content"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// HomeworkSubmission is a piece of homework a student asked the AI to check.
type HomeworkSubmission struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject   string         `gorm:"size:64;not null" json:"subject"`
	Content   string         `gorm:"type:text" json:"content"`
	ImageURL  string         `gorm:"size:512" json:"image_url"`
	Analysis  datatypes.JSON `json:"analysis"`
	Score     *float64       `json:"score"`
	CreatedAt time.Time      `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (h *HomeworkSubmission) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// AnalysisPayload decodes the stored analysis JSON. Returns the zero value
// when no analysis has been recorded yet.
func (h HomeworkSubmission) AnalysisPayload() HomeworkAnalysis {
	var payload HomeworkAnalysis
	if len(h.Analysis) == 0 {
		return payload
	}
	_ = json.Unmarshal(h.Analysis, &payload)
	return payload
}
