package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
)

// ErrNoEngagementTarget indicates neither a post nor a comment was targeted.
var ErrNoEngagementTarget = errors.New("a post or comment target is required")

// EngagementService handles likes and ratings on forum content.
type EngagementService interface {
	ToggleLike(ctx context.Context, userID string, req dto.LikeToggleRequest) (dto.LikeToggleResponse, error)
	CountLikes(ctx context.Context, postID, commentID *string) (dto.LikeCountResponse, error)
	CheckLike(ctx context.Context, userID string, postID, commentID *string) (dto.LikeCheckResponse, error)
	Rate(ctx context.Context, userID string, req dto.RatingCreateRequest) (dto.RatingResponse, error)
	AverageRating(ctx context.Context, commentID string) (float64, error)
}

type engagementService struct {
	likes    repository.LikeRepository
	ratings  repository.RatingRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewEngagementService constructs an EngagementService instance.
func NewEngagementService(likes repository.LikeRepository, ratings repository.RatingRepository, validate *validator.Validate, logger zerolog.Logger) EngagementService {
	return &engagementService{
		likes:    likes,
		ratings:  ratings,
		validate: validate,
		logger:   logger.With().Str("component", "engagement_service").Logger(),
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, userID string, req dto.LikeToggleRequest) (dto.LikeToggleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.LikeToggleResponse{}, err
	}
	if req.PostID == nil && req.CommentID == nil {
		return dto.LikeToggleResponse{}, ErrNoEngagementTarget
	}

	existing, err := s.likes.Find(ctx, userID, req.PostID, req.CommentID)
	switch {
	case err == nil:
		if err := s.likes.Delete(ctx, existing.ID); err != nil {
			return dto.LikeToggleResponse{}, err
		}
		return dto.LikeToggleResponse{Liked: false}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{
			PostID:    req.PostID,
			CommentID: req.CommentID,
			UserID:    userID,
		}
		if err := s.likes.Create(ctx, &like); err != nil {
			return dto.LikeToggleResponse{}, err
		}
		return dto.LikeToggleResponse{Liked: true}, nil
	default:
		return dto.LikeToggleResponse{}, err
	}
}

func (s *engagementService) CountLikes(ctx context.Context, postID, commentID *string) (dto.LikeCountResponse, error) {
	if postID == nil && commentID == nil {
		return dto.LikeCountResponse{}, ErrNoEngagementTarget
	}

	count, err := s.likes.Count(ctx, postID, commentID)
	if err != nil {
		return dto.LikeCountResponse{}, err
	}

	return dto.LikeCountResponse{Count: count}, nil
}

func (s *engagementService) CheckLike(ctx context.Context, userID string, postID, commentID *string) (dto.LikeCheckResponse, error) {
	if postID == nil && commentID == nil {
		return dto.LikeCheckResponse{}, ErrNoEngagementTarget
	}

	_, err := s.likes.Find(ctx, userID, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LikeCheckResponse{IsLiked: false}, nil
		}
		return dto.LikeCheckResponse{}, err
	}

	return dto.LikeCheckResponse{IsLiked: true}, nil
}

func (s *engagementService) Rate(ctx context.Context, userID string, req dto.RatingCreateRequest) (dto.RatingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.RatingResponse{}, err
	}
	if req.PostID == nil && req.CommentID == nil {
		return dto.RatingResponse{}, ErrNoEngagementTarget
	}

	rating := models.Rating{
		PostID:    req.PostID,
		CommentID: req.CommentID,
		UserID:    userID,
		Rating:    req.Rating,
	}

	if err := s.ratings.Create(ctx, &rating); err != nil {
		return dto.RatingResponse{}, err
	}

	return dto.NewRatingResponse(rating), nil
}

func (s *engagementService) AverageRating(ctx context.Context, commentID string) (float64, error) {
	return s.ratings.AverageForComment(ctx, commentID)
}
