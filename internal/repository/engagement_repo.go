package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
)

// LikeRepository defines data operations for likes.
type LikeRepository interface {
	Find(ctx context.Context, userID string, postID, commentID *string) (models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, postID, commentID *string) (int64, error)
}

// RatingRepository defines data operations for ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	AverageForComment(ctx context.Context, commentID string) (float64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository instantiates the repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func targetScope(db *gorm.DB, postID, commentID *string) *gorm.DB {
	if postID != nil {
		db = db.Where("post_id = ?", *postID)
	} else {
		db = db.Where("post_id IS NULL")
	}

	if commentID != nil {
		db = db.Where("comment_id = ?", *commentID)
	} else {
		db = db.Where("comment_id IS NULL")
	}

	return db
}

func (r *likeRepository) Find(ctx context.Context, userID string, postID, commentID *string) (models.Like, error) {
	var like models.Like
	query := targetScope(r.db.WithContext(ctx).Where("user_id = ?", userID), postID, commentID)
	if err := query.First(&like).Error; err != nil {
		return models.Like{}, err
	}

	return like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Like{}, "id = ?", id).Error
}

func (r *likeRepository) Count(ctx context.Context, postID, commentID *string) (int64, error) {
	var count int64
	query := targetScope(r.db.WithContext(ctx).Model(&models.Like{}), postID, commentID)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository instantiates the repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) AverageForComment(ctx context.Context, commentID string) (float64, error) {
	var average *float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating)").
		Where("comment_id = ?", commentID).
		Scan(&average).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if average == nil {
		return 0, nil
	}

	return *average, nil
}
