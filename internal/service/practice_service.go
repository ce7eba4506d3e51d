package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/pkg/openrouter"
)

var (
	// ErrAttemptNotFound indicates a practice attempt could not be found.
	ErrAttemptNotFound = errors.New("practice attempt not found")
	// ErrAttemptForbidden indicates the attempt belongs to another user.
	ErrAttemptForbidden = errors.New("practice attempt belongs to another user")
	// ErrAttemptCompleted indicates answers arrived after completion.
	ErrAttemptCompleted = errors.New("practice attempt already completed")
	// ErrNoQuestions indicates a quiz was started without a question set.
	ErrNoQuestions = errors.New("no practice questions for submission")
)

const (
	generationMaxTokens = 3000

	// readingPauseSeconds is the pause shown after a correct answer while
	// the explanation is on screen. The client may skip it on demand.
	readingPauseSeconds = 60
)

const practiceSystemPrompt = "Bạn là chuyên gia tạo câu hỏi trắc nghiệm giáo dục. Hãy tạo câu hỏi chất lượng cao với đáp án chính xác."

func practicePrompt(subject, content string) string {
	return fmt.Sprintf(`Dựa trên bài làm môn %s này:
%s

Tạo 12 câu hỏi trắc nghiệm (4 dễ, 4 trung bình, 4 khó) với format JSON:
{
  "questions": [
    {
      "question": "Câu hỏi...",
      "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
      "correctAnswer": "A",
      "explanation": "Giải thích...",
      "difficulty": "easy|medium|hard"
    }
  ]
}

Đảm bảo câu hỏi liên quan đến chủ đề và có độ khó tăng dần.`, subject, content)
}

// PracticeService drives question generation and the quiz state machine.
type PracticeService interface {
	Generate(ctx context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error)
	List(ctx context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error)
	StartAttempt(ctx context.Context, userID, submissionID string) (dto.PracticeAttemptResponse, error)
	SubmitAnswer(ctx context.Context, userID, attemptID string, payload dto.PracticeAnswerRequest) (dto.PracticeAnswerResponse, error)
}

type practiceService struct {
	practice    repository.PracticeRepository
	submissions repository.HomeworkRepository
	modelOf     ModelProvider
	gateway     AIGateway
	validator   *validator.Validate
	scoreAward  float64
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPracticeService constructs a PracticeService instance. scoreAward is
// the amount credited to a user's total score for finishing a full set.
func NewPracticeService(practice repository.PracticeRepository, submissions repository.HomeworkRepository, provider ModelProvider, gateway AIGateway, validate *validator.Validate, scoreAward float64, logger zerolog.Logger) PracticeService {
	if scoreAward <= 0 {
		scoreAward = 10
	}

	return &practiceService{
		practice:    practice,
		submissions: submissions,
		modelOf:     provider,
		gateway:     gateway,
		validator:   validate,
		scoreAward:  scoreAward,
		logger:      logger.With().Str("component", "practice_service").Logger(),
		now:         time.Now,
	}
}

func (s *practiceService) Generate(ctx context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	model, err := s.modelOf.ActiveModelID(ctx)
	if err != nil {
		return nil, err
	}

	answer := s.gateway.Complete(ctx, model, []openrouter.Message{
		{Role: "system", Content: practiceSystemPrompt},
		{Role: "user", Content: practicePrompt(submission.Subject, submission.Content)},
	}, generationMaxTokens)

	questions := s.buildQuestionSet(submission, answer)

	if err := s.practice.ReplaceQuestions(ctx, submissionID, questions); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submission_id", submissionID).
		Int("question_count", len(questions)).
		Msg("practice questions generated")

	return dto.NewPracticeQuestionResponseSlice(questions), nil
}

// buildQuestionSet turns AI output into persistable questions, substituting
// the single fallback question when the payload cannot be parsed.
func (s *practiceService) buildQuestionSet(submission models.HomeworkSubmission, answer string) []models.PracticeQuestion {
	parsed, err := parseQuestionSet(answer)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("submission_id", submission.ID).
			Msg("ai question payload unusable, substituting fallback set")
		return []models.PracticeQuestion{fallbackQuestion(submission.Subject)}
	}

	questions := make([]models.PracticeQuestion, 0, len(parsed))
	for index, item := range parsed {
		options, err := json.Marshal(item.Options)
		if err != nil {
			continue
		}
		questions = append(questions, models.PracticeQuestion{
			Question:      item.Question,
			Options:       options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
			Difficulty:    item.Difficulty,
			OrderIndex:    index,
		})
	}

	if len(questions) == 0 {
		return []models.PracticeQuestion{fallbackQuestion(submission.Subject)}
	}

	return questions
}

func fallbackQuestion(subject string) models.PracticeQuestion {
	options, _ := json.Marshal([]string{"A. Đáp án A", "B. Đáp án B", "C. Đáp án C", "D. Đáp án D"})

	return models.PracticeQuestion{
		Question:      fmt.Sprintf("Câu hỏi luyện tập về %s", subject),
		Options:       options,
		CorrectAnswer: "A",
		Explanation:   "Đây là câu hỏi mẫu",
		Difficulty:    models.DifficultyMedium,
		OrderIndex:    0,
	}
}

func (s *practiceService) List(ctx context.Context, submissionID string) ([]dto.PracticeQuestionResponse, error) {
	questions, err := s.practice.ListQuestions(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	return dto.NewPracticeQuestionResponseSlice(questions), nil
}

func (s *practiceService) StartAttempt(ctx context.Context, userID, submissionID string) (dto.PracticeAttemptResponse, error) {
	questions, err := s.practice.ListQuestions(ctx, submissionID)
	if err != nil {
		return dto.PracticeAttemptResponse{}, err
	}
	if len(questions) == 0 {
		return dto.PracticeAttemptResponse{}, ErrNoQuestions
	}

	open, err := s.practice.GetOpenAttempt(ctx, userID, submissionID)
	if err == nil {
		return dto.NewPracticeAttemptResponse(open), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PracticeAttemptResponse{}, err
	}

	attempt := models.PracticeAttempt{
		UserID:         userID,
		SubmissionID:   submissionID,
		TotalQuestions: len(questions),
	}

	if err := s.practice.CreateAttempt(ctx, &attempt); err != nil {
		return dto.PracticeAttemptResponse{}, err
	}

	return dto.NewPracticeAttemptResponse(attempt), nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, userID, attemptID string, payload dto.PracticeAnswerRequest) (dto.PracticeAnswerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PracticeAnswerResponse{}, err
	}

	attempt, err := s.practice.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PracticeAnswerResponse{}, ErrAttemptNotFound
		}
		return dto.PracticeAnswerResponse{}, err
	}

	if attempt.UserID != userID {
		return dto.PracticeAnswerResponse{}, ErrAttemptForbidden
	}
	if attempt.Completed {
		return dto.PracticeAnswerResponse{}, ErrAttemptCompleted
	}

	questions, err := s.practice.ListQuestions(ctx, attempt.SubmissionID)
	if err != nil {
		return dto.PracticeAnswerResponse{}, err
	}
	if attempt.CurrentIndex >= len(questions) {
		return dto.PracticeAnswerResponse{}, ErrNoQuestions
	}

	question := questions[attempt.CurrentIndex]
	answer := strings.TrimSpace(payload.Answer)
	correct := strings.EqualFold(answer, question.CorrectAnswer)

	attempt.AppendEvent(models.AttemptEvent{
		QuestionIndex: attempt.CurrentIndex,
		Answer:        answer,
		Correct:       correct,
		AnsweredAt:    s.now(),
	})

	response := dto.PracticeAnswerResponse{Correct: correct}

	if !correct {
		// One wrong answer restarts the whole set; the questions stay.
		attempt.CurrentIndex = 0
		attempt.QuestionsCorrect = 0

		if err := s.practice.UpdateAttempt(ctx, &attempt); err != nil {
			return dto.PracticeAnswerResponse{}, err
		}

		response.Attempt = dto.NewPracticeAttemptResponse(attempt)
		return response, nil
	}

	attempt.QuestionsCorrect++
	attempt.CurrentIndex++
	response.CorrectAnswer = question.CorrectAnswer
	response.Explanation = question.Explanation
	response.ReadingPauseSeconds = readingPauseSeconds

	if attempt.CurrentIndex >= len(questions) {
		if err := s.practice.CompleteAttempt(ctx, &attempt, s.scoreAward); err != nil {
			return dto.PracticeAnswerResponse{}, err
		}

		s.logger.Info().
			Str("attempt_id", attempt.ID).
			Str("user_id", attempt.UserID).
			Float64("score_awarded", attempt.ScoreAwarded).
			Msg("practice attempt completed")

		response.Attempt = dto.NewPracticeAttemptResponse(attempt)
		return response, nil
	}

	if err := s.practice.UpdateAttempt(ctx, &attempt); err != nil {
		return dto.PracticeAnswerResponse{}, err
	}

	response.Attempt = dto.NewPracticeAttemptResponse(attempt)
	return response, nil
}
