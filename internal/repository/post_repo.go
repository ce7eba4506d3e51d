package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// PostRepository defines data operations for forum posts.
type PostRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository instantiates the repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_expired = ?", false).
		Where("expires_at > ?", time.Now()).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
