package router_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/limva/limva-api/internal/config"
	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/handler"
	"github.com/limva/limva-api/internal/middleware"
	"github.com/limva/limva-api/internal/router"
)

const routerTestSecret = "router-test-secret"

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, dto.RegisterRequest) (dto.AuthResponse, error) {
	return dto.AuthResponse{Token: "token"}, nil
}

func (stubAuthService) Login(context.Context, dto.LoginRequest) (dto.AuthResponse, error) {
	return dto.AuthResponse{Token: "token"}, nil
}

type stubProfileService struct{}

func (stubProfileService) Get(context.Context, string) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (stubProfileService) GetByUsername(context.Context, string) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (stubProfileService) Update(context.Context, string, dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (stubProfileService) UploadAvatar(context.Context, string, *multipart.FileHeader) (dto.AvatarResponse, error) {
	return dto.AvatarResponse{}, nil
}

type stubPostService struct{}

func (stubPostService) List(context.Context, int, int) ([]dto.PostResponse, error) {
	return nil, nil
}

func (stubPostService) Get(context.Context, string) (dto.PostResponse, error) {
	return dto.PostResponse{}, nil
}

func (stubPostService) Create(context.Context, string, dto.PostCreateRequest) (dto.PostResponse, error) {
	return dto.PostResponse{}, nil
}

func (stubPostService) Delete(context.Context, string, bool, string) error {
	return nil
}

type stubRankingService struct{}

func (stubRankingService) List(context.Context, string, int) ([]dto.RankingResponse, error) {
	return nil, nil
}

func (stubRankingService) Rollover(context.Context) error { return nil }

func (stubRankingService) Start(context.Context) {}

type stubAISettingsService struct{}

func (stubAISettingsService) ActiveModelID(context.Context) (string, error) { return "m", nil }

func (stubAISettingsService) Get(context.Context) (dto.AISettingsResponse, error) {
	return dto.AISettingsResponse{}, nil
}

func (stubAISettingsService) Update(context.Context, dto.AISettingsUpdateRequest) (dto.AISettingsResponse, error) {
	return dto.AISettingsResponse{}, nil
}

type stubAdminService struct{}

func (stubAdminService) ListUsers(context.Context, int, int) ([]dto.UserResponse, error) {
	return nil, nil
}

func (stubAdminService) VerifyUser(context.Context, string) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (stubAdminService) CreateAdmin(context.Context, dto.AdminCreateRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func newRouterApp() *fiber.App {
	logger := zerolog.New(io.Discard)
	cfg := config.Config{AppName: "limva-test", AIRateLimitPerMinute: 100}

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(stubAuthService{}, logger),
		ProfileHandler:    handler.NewProfileHandler(stubProfileService{}, logger),
		PostHandler:       handler.NewPostHandler(stubPostService{}, logger),
		RankingHandler:    handler.NewRankingHandler(stubRankingService{}, logger),
		AISettingsHandler: handler.NewAISettingsHandler(stubAISettingsService{}, logger),
		AdminHandler:      handler.NewAdminHandler(stubAdminService{}, logger),
		JWTMiddleware:     middleware.JWTProtected(routerTestSecret),
	})
	return app
}

func routerTestToken(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "11111111-1111-4111-8111-111111111111",
		"username": "hocsinh",
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(routerTestSecret))
	require.NoError(t, err)
	return token
}

func TestRouterPublicSurfaceNeedsNoToken(t *testing.T) {
	app := newRouterApp()

	public := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/register"},
		{http.MethodGet, "/api/posts"},
		{http.MethodGet, "/api/posts/some-id"},
		{http.MethodGet, "/api/rankings/national"},
		{http.MethodGet, "/api/ai-settings"},
		{http.MethodGet, "/api/users/hocsinh"},
		{http.MethodGet, "/api/v1/health"},
	}

	for _, route := range public {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.NotEqual(t, fiber.StatusUnauthorized, resp.StatusCode,
			"%s %s must not require a token", route.method, route.path)
	}
}

func TestRouterProtectedSurfaceRejectsAnonymous(t *testing.T) {
	app := newRouterApp()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodPut, "/api/me"},
		{http.MethodPost, "/api/posts"},
		{http.MethodDelete, "/api/posts/some-id"},
		{http.MethodPut, "/api/ai-settings"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPost, "/api/admin/rankings/rollover"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
			"%s %s must require a token", route.method, route.path)
	}
}

func TestRouterAcceptsTokenOnProtectedRoutes(t *testing.T) {
	app := newRouterApp()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+routerTestToken(t, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouterAISettingsUpdateIsAdminOnly(t *testing.T) {
	app := newRouterApp()

	req := httptest.NewRequest(http.MethodPut, "/api/ai-settings", nil)
	req.Header.Set("Authorization", "Bearer "+routerTestToken(t, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPut, "/api/ai-settings", nil)
	req.Header.Set("Authorization", "Bearer "+routerTestToken(t, true))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NotEqual(t, fiber.StatusForbidden, resp.StatusCode)
	require.NotEqual(t, fiber.StatusUnauthorized, resp.StatusCode)
}
