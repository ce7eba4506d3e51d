package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/handler"
	"github.com/limva/limva-api/internal/service"
)

type mockHomeworkService struct {
	lastUserID string
	lastSubmit dto.HomeworkSubmitRequest
	lastChat   dto.HomeworkChatRequest
	response   dto.HomeworkResponse
	chat       dto.HomeworkChatResponse
	err        error
}

func (m *mockHomeworkService) Submit(_ context.Context, userID string, req dto.HomeworkSubmitRequest) (dto.HomeworkResponse, error) {
	m.lastUserID = userID
	m.lastSubmit = req
	if m.err != nil {
		return dto.HomeworkResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockHomeworkService) Get(_ context.Context, id string) (dto.HomeworkResponse, error) {
	if m.err != nil {
		return dto.HomeworkResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockHomeworkService) Chat(_ context.Context, submissionID string, req dto.HomeworkChatRequest) (dto.HomeworkChatResponse, error) {
	m.lastChat = req
	if m.err != nil {
		return dto.HomeworkChatResponse{}, m.err
	}
	return m.chat, nil
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

func newHomeworkApp(svc service.HomeworkService, userID string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	handler.NewHomeworkHandler(svc, zerolog.New(io.Discard)).Register(group, passThrough, passThrough)
	return app
}

func TestHomeworkHandler_SubmitSuccess(t *testing.T) {
	svc := &mockHomeworkService{response: dto.HomeworkResponse{ID: "hw-1", Subject: "Toán"}}
	app := newHomeworkApp(svc, "user-42")

	req := jsonRequest(t, http.MethodPost, "/api/homework", dto.HomeworkSubmitRequest{
		Subject: "Toán",
		Content: "x + 1 = 2",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                 `json:"success"`
		Data    dto.HomeworkResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "hw-1", response.Data.ID)
	require.Equal(t, "user-42", svc.lastUserID)
}

func TestHomeworkHandler_SubmitRequiresLogin(t *testing.T) {
	svc := &mockHomeworkService{}
	app := newHomeworkApp(svc, "")

	req := jsonRequest(t, http.MethodPost, "/api/homework", dto.HomeworkSubmitRequest{Subject: "Toán", Content: "x"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, svc.lastSubmit.Subject)
}

func TestHomeworkHandler_GetNotFound(t *testing.T) {
	svc := &mockHomeworkService{err: service.ErrSubmissionNotFound}
	app := newHomeworkApp(svc, "user-42")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/homework/unknown", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Không tìm thấy bài làm", response.Message)
}

func TestHomeworkHandler_ChatWhenAIUnavailable(t *testing.T) {
	svc := &mockHomeworkService{err: service.ErrAIUnavailable}
	app := newHomeworkApp(svc, "user-42")

	req := jsonRequest(t, http.MethodPost, "/api/homework/hw-1/chat", dto.HomeworkChatRequest{Message: "Tại sao?"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Hệ thống AI hiện không khả dụng", response.Message)
}
