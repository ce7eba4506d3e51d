package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
)

var (
	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrCommentForbidden indicates the caller does not own the comment.
	ErrCommentForbidden = errors.New("comment belongs to another user")
)

// CommentService manages comments under forum posts.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]dto.CommentResponse, error)
	Create(ctx context.Context, userID string, req dto.CommentCreateRequest) (dto.CommentResponse, error)
	Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error
}

type commentService struct {
	comments  repository.CommentRepository
	posts     repository.PostRepository
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewCommentService constructs a CommentService instance.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, validate *validator.Validate, logger zerolog.Logger) CommentService {
	return &commentService{
		comments:  comments,
		posts:     posts,
		validate:  validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "comment_service").Logger(),
	}
}

func (s *commentService) ListByPost(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return dto.NewCommentResponseSlice(comments), nil
}

func (s *commentService) Create(ctx context.Context, userID string, req dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.CommentResponse{}, err
	}

	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrPostNotFound
		}
		return dto.CommentResponse{}, err
	}

	comment := models.Comment{
		PostID:   req.PostID,
		UserID:   &userID,
		ParentID: req.ParentID,
		Content:  strings.TrimSpace(s.sanitizer.Sanitize(req.Content)),
		ImageURL: req.ImageURL,
	}

	if err := s.comments.Create(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error {
	comments, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	owned := comments.UserID != nil && *comments.UserID == userID
	if !owned && !isAdmin {
		return ErrCommentForbidden
	}

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}

	return nil
}
