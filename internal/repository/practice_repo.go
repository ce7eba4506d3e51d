package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// PracticeRepository defines data operations for practice questions and attempts.
type PracticeRepository interface {
	// ReplaceQuestions discards any previous question set for the submission
	// and stores the new one in a single transaction.
	ReplaceQuestions(ctx context.Context, submissionID string, questions []models.PracticeQuestion) error
	ListQuestions(ctx context.Context, submissionID string) ([]models.PracticeQuestion, error)
	GetOpenAttempt(ctx context.Context, userID, submissionID string) (models.PracticeAttempt, error)
	GetAttempt(ctx context.Context, id string) (models.PracticeAttempt, error)
	CreateAttempt(ctx context.Context, attempt *models.PracticeAttempt) error
	UpdateAttempt(ctx context.Context, attempt *models.PracticeAttempt) error
	// CompleteAttempt marks the attempt finished and credits the award to the
	// user's total score atomically.
	CompleteAttempt(ctx context.Context, attempt *models.PracticeAttempt, award float64) error
}

type practiceRepository struct {
	db *gorm.DB
}

// NewPracticeRepository instantiates the repository.
func NewPracticeRepository(db *gorm.DB) PracticeRepository {
	return &practiceRepository{db: db}
}

func (r *practiceRepository) ReplaceQuestions(ctx context.Context, submissionID string, questions []models.PracticeQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PracticeQuestion{}, "submission_id = ?", submissionID).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].SubmissionID = submissionID
		}

		return tx.Create(&questions).Error
	})
}

func (r *practiceRepository) ListQuestions(ctx context.Context, submissionID string) ([]models.PracticeQuestion, error) {
	var questions []models.PracticeQuestion
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *practiceRepository) GetOpenAttempt(ctx context.Context, userID, submissionID string) (models.PracticeAttempt, error) {
	var attempt models.PracticeAttempt
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("submission_id = ?", submissionID).
		Where("completed = ?", false).
		Order("created_at DESC").
		First(&attempt).Error; err != nil {
		return models.PracticeAttempt{}, err
	}

	return attempt, nil
}

func (r *practiceRepository) GetAttempt(ctx context.Context, id string) (models.PracticeAttempt, error) {
	var attempt models.PracticeAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return models.PracticeAttempt{}, err
	}

	return attempt, nil
}

func (r *practiceRepository) CreateAttempt(ctx context.Context, attempt *models.PracticeAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *practiceRepository) UpdateAttempt(ctx context.Context, attempt *models.PracticeAttempt) error {
	return r.db.WithContext(ctx).Save(attempt).Error
}

func (r *practiceRepository) CompleteAttempt(ctx context.Context, attempt *models.PracticeAttempt, award float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt.Completed = true
		attempt.ScoreAwarded = award

		if err := tx.Save(attempt).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", attempt.UserID).
			Update("total_score", gorm.Expr("total_score + ?", award)).Error
	})
}
