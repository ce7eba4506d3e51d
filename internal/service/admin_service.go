package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
)

// AdminService exposes account administration operations.
type AdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]dto.UserResponse, error)
	VerifyUser(ctx context.Context, userID string) (dto.UserResponse, error)
	CreateAdmin(ctx context.Context, req dto.AdminCreateRequest) (dto.UserResponse, error)
}

type adminService struct {
	users    repository.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) AdminService {
	return &adminService{
		users:    users,
		validate: validate,
		logger:   logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(users), nil
}

func (s *adminService) VerifyUser(ctx context.Context, userID string) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("account verified")

	return dto.NewUserResponse(user), nil
}

func (s *adminService) CreateAdmin(ctx context.Context, req dto.AdminCreateRequest) (dto.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return dto.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	admin := models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		Name:       req.Name,
		IsAdmin:    true,
		IsVerified: true,
	}

	if err := s.users.Create(ctx, &admin); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", admin.ID).Msg("admin account created")

	return dto.NewUserResponse(admin), nil
}
