package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/observability"
	"github.com/limva/limva-api/internal/repository"
)

var (
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAvatarTooLarge indicates the avatar exceeded the configured limit.
	ErrAvatarTooLarge = errors.New("avatar exceeds maximum allowed size")
	// ErrAvatarNotImage indicates the upload is not an image.
	ErrAvatarNotImage = errors.New("avatar must be an image")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ProfileService exposes account profiles and avatar management.
type ProfileService interface {
	Get(ctx context.Context, userID string) (dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (dto.UserResponse, error)
	Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (dto.UserResponse, error)
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (dto.AvatarResponse, error)
}

type profileService struct {
	users    repository.UserRepository
	storage  FileStorage
	validate *validator.Validate
	maxSize  int64
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(users repository.UserRepository, storage FileStorage, validate *validator.Validate, maxSizeMB int, logger zerolog.Logger) ProfileService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &profileService{
		users:    users,
		storage:  storage,
		validate: validate,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "profile_service").Logger(),
		tracer:   otel.Tracer("github.com/limva/limva-api/internal/service/profile"),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (dto.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *profileService) Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Theme != nil {
		user.Theme = *req.Theme
	}
	if req.School != nil {
		user.School = req.School
	}
	if req.Province != nil {
		user.Province = req.Province
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (dto.AvatarResponse, error) {
	ctx, span := s.tracer.Start(ctx, "profile.upload_avatar")
	defer span.End()

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.AvatarResponse{}, err
	}

	if file.Size > s.maxSize {
		observability.AvatarRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrAvatarTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.AvatarResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.AvatarResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.AvatarRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrAvatarTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	span.SetAttributes(attribute.String("avatar.detected_mime", detected.String()))
	if !strings.HasPrefix(detected.String(), "image/") {
		observability.AvatarRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrAvatarNotImage)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.AvatarResponse{}, ErrAvatarNotImage
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AvatarResponse{}, ErrUserNotFound
		}
		return dto.AvatarResponse{}, err
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.AvatarResponse{}, err
	}

	user.Avatar = url
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.AvatarResponse{}, err
	}

	span.SetStatus(codes.Ok, "stored")
	s.logger.Info().Str("user_id", userID).Msg("avatar updated")

	return dto.AvatarResponse{
		ObjectPath: url,
		User:       dto.NewUserResponse(user),
	}, nil
}
