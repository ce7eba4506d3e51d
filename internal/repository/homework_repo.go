package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// HomeworkRepository defines data operations for homework submissions.
type HomeworkRepository interface {
	Create(ctx context.Context, submission *models.HomeworkSubmission) error
	GetByID(ctx context.Context, id string) (models.HomeworkSubmission, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.HomeworkSubmission, error)
	UpdateAnalysis(ctx context.Context, id string, analysis datatypes.JSON) error
}

type homeworkRepository struct {
	db *gorm.DB
}

// NewHomeworkRepository instantiates the repository.
func NewHomeworkRepository(db *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

func (r *homeworkRepository) Create(ctx context.Context, submission *models.HomeworkSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *homeworkRepository) GetByID(ctx context.Context, id string) (models.HomeworkSubmission, error) {
	var submission models.HomeworkSubmission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return models.HomeworkSubmission{}, err
	}

	return submission, nil
}

func (r *homeworkRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.HomeworkSubmission, error) {
	var submissions []models.HomeworkSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *homeworkRepository) UpdateAnalysis(ctx context.Context, id string, analysis datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&models.HomeworkSubmission{}).
		Where("id = ?", id).
		Update("analysis", analysis).Error
}
