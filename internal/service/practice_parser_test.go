package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const validQuestionJSON = `{
  "questions": [
    {
      "question": "2 + 2 bằng bao nhiêu?",
      "options": ["A. 3", "B. 4", "C. 5", "D. 6"],
      "correctAnswer": "B",
      "explanation": "Phép cộng cơ bản.",
      "difficulty": "easy"
    }
  ]
}`

func TestParseQuestionSetAcceptsFencedPayload(t *testing.T) {
	text := fmt.Sprintf("Đây là câu hỏi của bạn:\n```json\n%s\n```\nChúc may mắn!", validQuestionJSON)

	questions, err := parseQuestionSet(text)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "B", questions[0].CorrectAnswer)
	require.Len(t, questions[0].Options, 4)
}

func TestParseQuestionSetAcceptsBareFence(t *testing.T) {
	text := fmt.Sprintf("```\n%s\n```", validQuestionJSON)

	questions, err := parseQuestionSet(text)
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestParseQuestionSetAcceptsEmbeddedObject(t *testing.T) {
	text := "Một vài lời dẫn. " + validQuestionJSON + " Hết."

	questions, err := parseQuestionSet(text)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "easy", questions[0].Difficulty)
}

func TestParseQuestionSetRejectsNonJSON(t *testing.T) {
	_, err := parseQuestionSet("Xin lỗi, tôi không thể tạo câu hỏi lúc này.")
	require.Error(t, err)
}

func TestParseQuestionSetRejectsWrongShape(t *testing.T) {
	cases := []string{
		`{"questions": []}`,
		`{"questions": [{"question": "q", "options": ["A", "B"], "correctAnswer": "A", "explanation": "", "difficulty": "easy"}]}`,
		`{"questions": [{"question": "q", "options": ["A", "B", "C", "D"], "correctAnswer": "A", "explanation": "", "difficulty": "extreme"}]}`,
		`{"items": []}`,
	}

	for _, payload := range cases {
		_, err := parseQuestionSet(payload)
		require.Error(t, err, payload)
	}
}

func TestExtractJSONPayloadPrefersFence(t *testing.T) {
	text := "{\"noise\": true}\n```json\n{\"questions\": []}\n```"
	require.JSONEq(t, `{"questions": []}`, extractJSONPayload(text))
}
