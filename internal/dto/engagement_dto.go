package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// RatingCreateRequest rates a post or a comment; one target is required.
type RatingCreateRequest struct {
	PostID    *string `json:"post_id" validate:"omitempty,uuid4"`
	CommentID *string `json:"comment_id" validate:"omitempty,uuid4"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
}

// RatingResponse is returned after rating.
type RatingResponse struct {
	ID        string    `json:"id"`
	PostID    *string   `json:"post_id"`
	CommentID *string   `json:"comment_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeToggleRequest likes (or unlikes) a post or a comment.
type LikeToggleRequest struct {
	PostID    *string `json:"post_id" validate:"omitempty,uuid4"`
	CommentID *string `json:"comment_id" validate:"omitempty,uuid4"`
}

// LikeToggleResponse reports the like state after the toggle.
type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}

// LikeCountResponse carries the like count for a target.
type LikeCountResponse struct {
	Count int64 `json:"count"`
}

// LikeCheckResponse reports whether the caller liked a target.
type LikeCheckResponse struct {
	IsLiked bool `json:"is_liked"`
}

// NewRatingResponse converts a Rating model into a DTO.
func NewRatingResponse(model models.Rating) RatingResponse {
	return RatingResponse{
		ID:        model.ID,
		PostID:    model.PostID,
		CommentID: model.CommentID,
		UserID:    model.UserID,
		Rating:    model.Rating,
		CreatedAt: model.CreatedAt,
	}
}
