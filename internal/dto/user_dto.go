package dto

import (
	"time"

	"github.com/limva/limva-api/internal/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar"`
	Bio        string    `json:"bio"`
	Theme      string    `json:"theme"`
	School     *string   `json:"school"`
	Province   *string   `json:"province"`
	IsAdmin    bool      `json:"is_admin"`
	IsVerified bool      `json:"is_verified"`
	TotalScore float64   `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserLite summarizes a user for embedding in other responses.
type UserLite struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// ProfileUpdateRequest carries the editable profile fields.
type ProfileUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=512"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Theme    *string `json:"theme" validate:"omitempty,max=32"`
	School   *string `json:"school" validate:"omitempty,max=255"`
	Province *string `json:"province" validate:"omitempty,max=255"`
}

// AvatarResponse returns the stored avatar location after upload.
type AvatarResponse struct {
	ObjectPath string       `json:"object_path"`
	User       UserResponse `json:"user"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:         model.ID,
		Username:   model.Username,
		Email:      model.Email,
		Name:       model.Name,
		Avatar:     model.Avatar,
		Bio:        model.Bio,
		Theme:      model.Theme,
		School:     model.School,
		Province:   model.Province,
		IsAdmin:    model.IsAdmin,
		IsVerified: model.IsVerified,
		TotalScore: model.TotalScore,
		CreatedAt:  model.CreatedAt,
	}
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}

// NewUserLite converts a User model into an embedded summary.
func NewUserLite(model models.User) UserLite {
	return UserLite{
		ID:       model.ID,
		Username: model.Username,
		Name:     model.Name,
		Avatar:   model.Avatar,
	}
}
