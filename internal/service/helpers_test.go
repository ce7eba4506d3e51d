package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/pkg/openrouter"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.HomeworkSubmission{},
		&models.PracticeQuestion{},
		&models.PracticeAttempt{},
		&models.MonthlyRanking{},
		&models.AISettings{},
		&models.Rating{},
		&models.Like{},
	))

	return db
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// stubProvider always resolves to a fixed model identifier.
type stubProvider struct {
	model string
	err   error
}

func (p stubProvider) ActiveModelID(context.Context) (string, error) {
	return p.model, p.err
}

// stubGateway returns a canned answer and records what it was asked.
type stubGateway struct {
	answer   string
	requests []stubGatewayRequest
}

type stubGatewayRequest struct {
	model    string
	messages []openrouter.Message
}

func (g *stubGateway) Complete(_ context.Context, model string, messages []openrouter.Message, _ int) string {
	g.requests = append(g.requests, stubGatewayRequest{model: model, messages: messages})
	return g.answer
}

func stringPointer(value string) *string {
	return &value
}
