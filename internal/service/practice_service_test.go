package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
)

func questionSetJSON(count int) string {
	var items []string
	difficulties := []string{"easy", "medium", "hard"}
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(`{
			"question": "Câu hỏi số %d",
			"options": ["A. Một", "B. Hai", "C. Ba", "D. Bốn"],
			"correctAnswer": "A",
			"explanation": "Giải thích %d",
			"difficulty": "%s"
		}`, i+1, i+1, difficulties[i%len(difficulties)]))
	}

	return fmt.Sprintf(`{"questions": [%s]}`, strings.Join(items, ","))
}

func seedSubmission(t *testing.T, db *gorm.DB) (models.User, models.HomeworkSubmission) {
	t.Helper()

	user := models.User{
		Username: "hocsinh",
		Email:    "hocsinh@example.com",
		Password: "hashed",
		Name:     "Học Sinh",
	}
	require.NoError(t, db.Create(&user).Error)

	submission := models.HomeworkSubmission{
		UserID:  user.ID,
		Subject: "Toán",
		Content: "Giải phương trình x + 1 = 2",
	}
	require.NoError(t, db.Create(&submission).Error)

	return user, submission
}

func newPracticeFixture(t *testing.T, db *gorm.DB, answer string) PracticeService {
	t.Helper()

	return NewPracticeService(
		repository.NewPracticeRepository(db),
		repository.NewHomeworkRepository(db),
		stubProvider{model: "deepseek/deepseek-r1-distill-qwen-14b:free"},
		&stubGateway{answer: answer},
		testValidator(),
		10,
		testLogger(),
	)
}

func TestGenerateStoresParsedQuestionSet(t *testing.T) {
	db := openTestDB(t)
	_, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, "```json\n"+questionSetJSON(12)+"\n```")

	questions, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Len(t, questions, 12)
	require.Equal(t, "Câu hỏi số 1", questions[0].Question)
	require.Equal(t, 0, questions[0].OrderIndex)
	require.Equal(t, 11, questions[11].OrderIndex)
}

func TestGenerateReplacesPreviousQuestions(t *testing.T) {
	db := openTestDB(t)
	_, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(12))
	_, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)

	svc = newPracticeFixture(t, db, questionSetJSON(3))
	questions, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	var count int64
	require.NoError(t, db.Model(&models.PracticeQuestion{}).Where("submission_id = ?", submission.ID).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestGenerateFallsBackOnUnparsableAnswer(t *testing.T) {
	db := openTestDB(t)
	_, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, "Xin lỗi, tôi không thể tạo câu hỏi.")

	questions, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "Câu hỏi luyện tập về Toán", questions[0].Question)
	require.Equal(t, "A", questions[0].CorrectAnswer)
	require.Equal(t, models.DifficultyMedium, questions[0].Difficulty)
}

func TestGenerateUnknownSubmission(t *testing.T) {
	db := openTestDB(t)
	svc := newPracticeFixture(t, db, questionSetJSON(1))

	_, err := svc.Generate(context.Background(), "0b7c5a34-0000-4000-8000-000000000000")
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestStartAttemptRequiresQuestions(t *testing.T) {
	db := openTestDB(t)
	user, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(2))

	_, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestStartAttemptResumesOpenSession(t *testing.T) {
	db := openTestDB(t)
	user, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(2))
	_, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)

	first, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.NoError(t, err)
	require.Equal(t, 2, first.TotalQuestions)
	require.False(t, first.Completed)

	second, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestSubmitAnswerWrongRestartsSet(t *testing.T) {
	db := openTestDB(t)
	user, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(3))
	_, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)

	attempt, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.NoError(t, err)

	// Two correct answers advance the cursor.
	for i := 0; i < 2; i++ {
		result, err := svc.SubmitAnswer(context.Background(), user.ID, attempt.ID, dto.PracticeAnswerRequest{Answer: "A"})
		require.NoError(t, err)
		require.True(t, result.Correct)
		require.Equal(t, i+1, result.Attempt.CurrentIndex)
		require.Equal(t, readingPauseSeconds, result.ReadingPauseSeconds)
	}

	// One wrong answer sends the cursor and streak back to zero.
	result, err := svc.SubmitAnswer(context.Background(), user.ID, attempt.ID, dto.PracticeAnswerRequest{Answer: "D"})
	require.NoError(t, err)
	require.False(t, result.Correct)
	require.Equal(t, 0, result.Attempt.CurrentIndex)
	require.Equal(t, 0, result.Attempt.QuestionsCorrect)
	require.False(t, result.Attempt.Completed)
	require.Empty(t, result.CorrectAnswer)
}

func TestSubmitAnswerCompletesAndAwardsScore(t *testing.T) {
	db := openTestDB(t)
	user, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(3))
	_, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)

	attempt, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.NoError(t, err)

	var final dto.PracticeAnswerResponse
	for i := 0; i < 3; i++ {
		final, err = svc.SubmitAnswer(context.Background(), user.ID, attempt.ID, dto.PracticeAnswerRequest{Answer: "a"})
		require.NoError(t, err)
		require.True(t, final.Correct)
	}

	require.True(t, final.Attempt.Completed)
	require.Equal(t, 3, final.Attempt.QuestionsCorrect)
	require.EqualValues(t, 10, final.Attempt.ScoreAwarded)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", user.ID).Error)
	require.EqualValues(t, 10, refreshed.TotalScore)

	// No further answers once the attempt is done.
	_, err = svc.SubmitAnswer(context.Background(), user.ID, attempt.ID, dto.PracticeAnswerRequest{Answer: "A"})
	require.ErrorIs(t, err, ErrAttemptCompleted)
}

func TestSubmitAnswerOwnership(t *testing.T) {
	db := openTestDB(t)
	user, submission := seedSubmission(t, db)

	svc := newPracticeFixture(t, db, questionSetJSON(1))
	_, err := svc.Generate(context.Background(), submission.ID)
	require.NoError(t, err)

	attempt, err := svc.StartAttempt(context.Background(), user.ID, submission.ID)
	require.NoError(t, err)

	other := models.User{Username: "khac", Email: "khac@example.com", Password: "hashed", Name: "Người Khác"}
	require.NoError(t, db.Create(&other).Error)

	_, err = svc.SubmitAnswer(context.Background(), other.ID, attempt.ID, dto.PracticeAnswerRequest{Answer: "A"})
	require.ErrorIs(t, err, ErrAttemptForbidden)
}
