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

type mockPracticeService struct {
	lastUserID    string
	lastAttemptID string
	lastAnswer    dto.PracticeAnswerRequest
	questions     []dto.PracticeQuestionResponse
	attempt       dto.PracticeAttemptResponse
	answer        dto.PracticeAnswerResponse
	err           error
}

func (m *mockPracticeService) Generate(_ context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error) {
	return m.questions, m.err
}

func (m *mockPracticeService) List(_ context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error) {
	return m.questions, m.err
}

func (m *mockPracticeService) StartAttempt(_ context.Context, userID, submissionID string) (dto.PracticeAttemptResponse, error) {
	m.lastUserID = userID
	return m.attempt, m.err
}

func (m *mockPracticeService) SubmitAnswer(_ context.Context, userID, attemptID string, payload dto.PracticeAnswerRequest) (dto.PracticeAnswerResponse, error) {
	m.lastUserID = userID
	m.lastAttemptID = attemptID
	m.lastAnswer = payload
	return m.answer, m.err
}

func newPracticeApp(svc service.PracticeService, userID string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	handler.NewPracticeHandler(svc, zerolog.New(io.Discard)).Register(group, passThrough, passThrough)
	return app
}

func TestPracticeHandler_StartAttempt(t *testing.T) {
	svc := &mockPracticeService{attempt: dto.PracticeAttemptResponse{ID: "attempt-1"}}
	app := newPracticeApp(svc, "user-42")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/homework/hw-1/practice/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "user-42", svc.lastUserID)
}

func TestPracticeHandler_SubmitAnswer(t *testing.T) {
	svc := &mockPracticeService{answer: dto.PracticeAnswerResponse{Correct: true}}
	app := newPracticeApp(svc, "user-42")

	req := jsonRequest(t, http.MethodPost, "/api/practice/attempts/attempt-1/answers", dto.PracticeAnswerRequest{Answer: "A"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "attempt-1", svc.lastAttemptID)
	require.Equal(t, "A", svc.lastAnswer.Answer)
}

func TestPracticeHandler_SubmitAnswerOnFinishedAttempt(t *testing.T) {
	svc := &mockPracticeService{err: service.ErrAttemptCompleted}
	app := newPracticeApp(svc, "user-42")

	req := jsonRequest(t, http.MethodPost, "/api/practice/attempts/attempt-1/answers", dto.PracticeAnswerRequest{Answer: "A"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Lượt luyện tập đã hoàn thành", response.Message)
}

func TestPracticeHandler_GenerateRequiresLogin(t *testing.T) {
	svc := &mockPracticeService{}
	app := newPracticeApp(svc, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/homework/hw-1/practice", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
