package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/pkg/openrouter"
)

var (
	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostForbidden indicates the caller does not own the post.
	ErrPostForbidden = errors.New("post belongs to another user")
)

const forumReplyMaxTokens = 1000

const forumSystemPrompt = "Bạn là trợ lý học tập LimVA, trả lời câu hỏi của học sinh " +
	"trên diễn đàn một cách thân thiện, ngắn gọn và chính xác. Trả lời bằng tiếng Việt."

// PostService manages forum posts and their automatic AI replies.
type PostService interface {
	List(ctx context.Context, limit, offset int) ([]dto.PostResponse, error)
	Get(ctx context.Context, id string) (dto.PostResponse, error)
	Create(ctx context.Context, userID string, req dto.PostCreateRequest) (dto.PostResponse, error)
	Delete(ctx context.Context, userID string, isAdmin bool, postID string) error
}

type postService struct {
	posts     repository.PostRepository
	comments  repository.CommentRepository
	provider  ModelProvider
	gateway   AIGateway
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewPostService constructs a PostService instance.
func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, provider ModelProvider, gateway AIGateway, validate *validator.Validate, logger zerolog.Logger) PostService {
	return &postService{
		posts:     posts,
		comments:  comments,
		provider:  provider,
		gateway:   gateway,
		validate:  validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "post_service").Logger(),
	}
}

func (s *postService) List(ctx context.Context, limit, offset int) ([]dto.PostResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return dto.NewPostResponseSlice(posts), nil
}

func (s *postService) Get(ctx context.Context, id string) (dto.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}

	return dto.NewPostResponse(post), nil
}

func (s *postService) Create(ctx context.Context, userID string, req dto.PostCreateRequest) (dto.PostResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.PostResponse{}, err
	}

	post := models.Post{
		UserID:   userID,
		Title:    strings.TrimSpace(s.sanitizer.Sanitize(req.Title)),
		Content:  strings.TrimSpace(s.sanitizer.Sanitize(req.Content)),
		ImageURL: req.ImageURL,
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	// Image posts need visual context the text models lack, so only
	// text-only posts receive an automatic reply.
	if post.ImageURL == "" {
		s.replyToPost(ctx, post)
	}

	created, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return dto.NewPostResponse(post), nil
	}

	return dto.NewPostResponse(created), nil
}

// replyToPost asks the active model for an answer and stores it as an AI
// comment. Failures are logged and do not fail the post creation.
func (s *postService) replyToPost(ctx context.Context, post models.Post) {
	model, err := s.provider.ActiveModelID(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", post.ID).Msg("skipping ai reply")
		return
	}

	prompt := post.Content
	if post.Title != "" {
		prompt = fmt.Sprintf("%s\n\n%s", post.Title, post.Content)
	}

	answer := s.gateway.Complete(ctx, model, []openrouter.Message{
		{Role: "system", Content: forumSystemPrompt},
		{Role: "user", Content: prompt},
	}, forumReplyMaxTokens)

	comment := models.Comment{
		PostID:       post.ID,
		Content:      answer,
		IsAIResponse: true,
	}

	if err := s.comments.Create(ctx, &comment); err != nil {
		s.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to store ai reply")
	}
}

func (s *postService) Delete(ctx context.Context, userID string, isAdmin bool, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.UserID != userID && !isAdmin {
		return ErrPostForbidden
	}

	deleted, err := s.posts.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	return nil
}
