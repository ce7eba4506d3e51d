package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// PostCreateRequest carries a new forum post.
type PostCreateRequest struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	Content  string `json:"content" validate:"required,min=1"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=512"`
}

// PostResponse is returned when viewing forum posts.
type PostResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	IsExpired bool      `json:"is_expired"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserLite  `json:"user"`
}

// CommentCreateRequest carries a new comment.
type CommentCreateRequest struct {
	PostID   string  `json:"post_id" validate:"required,uuid4"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid4"`
	Content  string  `json:"content" validate:"required,min=1"`
	ImageURL string  `json:"image_url" validate:"omitempty,url,max=512"`
}

// CommentResponse is returned when viewing comments.
type CommentResponse struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	UserID       *string   `json:"user_id"`
	ParentID     *string   `json:"parent_id"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url"`
	IsAIResponse bool      `json:"is_ai_response"`
	CreatedAt    time.Time `json:"created_at"`
	User         *UserLite `json:"user,omitempty"`
}

// NewPostResponse converts a Post model into a DTO.
func NewPostResponse(model models.Post) PostResponse {
	response := PostResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Title:     model.Title,
		Content:   model.Content,
		ImageURL:  model.ImageURL,
		IsExpired: model.IsExpired,
		CreatedAt: model.CreatedAt,
		ExpiresAt: model.ExpiresAt,
	}

	if model.User.ID != "" {
		response.User = NewUserLite(model.User)
	}

	return response
}

// NewPostResponseSlice converts post models into DTOs.
func NewPostResponseSlice(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, NewPostResponse(post))
	}

	return responses
}

// NewCommentResponse converts a Comment model into a DTO.
func NewCommentResponse(model models.Comment) CommentResponse {
	response := CommentResponse{
		ID:           model.ID,
		PostID:       model.PostID,
		UserID:       model.UserID,
		ParentID:     model.ParentID,
		Content:      model.Content,
		ImageURL:     model.ImageURL,
		IsAIResponse: model.IsAIResponse,
		CreatedAt:    model.CreatedAt,
	}

	if model.User != nil && model.User.ID != "" {
		lite := NewUserLite(*model.User)
		response.User = &lite
	}

	return response
}

// NewCommentResponseSlice converts comment models into DTOs.
func NewCommentResponseSlice(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}

	return responses
}
