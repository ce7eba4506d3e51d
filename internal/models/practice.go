package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// DifficultyEasy marks warm-up questions.
	DifficultyEasy = "easy"
	// DifficultyMedium marks standard questions.
	DifficultyMedium = "medium"
	// DifficultyHard marks stretch questions.
	DifficultyHard = "hard"
)

// PracticeSetSize is the number of questions in a full practice set.
const PracticeSetSize = 12

// PracticeQuestion is one multiple-choice item generated for a submission.
type PracticeQuestion struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID  string         `gorm:"type:uuid;not null;index" json:"submission_id"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"not null" json:"options"`
	CorrectAnswer string         `gorm:"size:8;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text;not null" json:"explanation"`
	Difficulty    string         `gorm:"size:16;not null" json:"difficulty"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (q *PracticeQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// OptionList decodes the stored option labels.
func (q PracticeQuestion) OptionList() []string {
	var options []string
	_ = json.Unmarshal(q.Options, &options)
	return options
}

// AttemptEvent is one answer recorded in the attempt log.
type AttemptEvent struct {
	QuestionIndex int       `json:"question_index"`
	Answer        string    `json:"answer"`
	Correct       bool      `json:"correct"`
	AnsweredAt    time.Time `json:"answered_at"`
}

// PracticeAttempt is a quiz session over a submission's question set. The
// whole set restarts from question zero whenever an answer is wrong, so a
// session is only won by an unbroken correct streak.
type PracticeAttempt struct {
	ID               string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string         `gorm:"type:uuid;not null;index" json:"user_id"`
	SubmissionID     string         `gorm:"type:uuid;not null;index" json:"submission_id"`
	QuestionsCorrect int            `gorm:"default:0" json:"questions_correct"`
	TotalQuestions   int            `gorm:"default:12" json:"total_questions"`
	CurrentIndex     int            `gorm:"default:0" json:"current_index"`
	Attempts         datatypes.JSON `json:"attempts"`
	ScoreAwarded     float64        `gorm:"default:0" json:"score_awarded"`
	Completed        bool           `gorm:"default:false" json:"completed"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (a *PracticeAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// EventLog decodes the recorded answer events.
func (a PracticeAttempt) EventLog() []AttemptEvent {
	var events []AttemptEvent
	if len(a.Attempts) == 0 {
		return events
	}
	_ = json.Unmarshal(a.Attempts, &events)
	return events
}

// AppendEvent records an answer event onto the attempt log.
func (a *PracticeAttempt) AppendEvent(event AttemptEvent) {
	events := append(a.EventLog(), event)
	payload, err := json.Marshal(events)
	if err != nil {
		return
	}
	a.Attempts = payload
}
