package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// questionSetSchema guards the shape of AI-generated question payloads
// before anything reaches the database.
const questionSetSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "correctAnswer", "explanation", "difficulty"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {"type": "string", "minLength": 1}
          },
          "correctAnswer": {"type": "string", "minLength": 1},
          "explanation": {"type": "string"},
          "difficulty": {"enum": ["easy", "medium", "hard"]}
        }
      }
    }
  }
}`

var compiledQuestionSetSchema = jsonschema.MustCompileString("question_set.json", questionSetSchema)

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type generatedQuestionSet struct {
	Questions []generatedQuestion `json:"questions"`
}

// extractJSONPayload pulls the JSON object out of freeform AI text. Fenced
// code blocks win; otherwise the slice between the first '{' and the last
// '}' is used.
func extractJSONPayload(text string) string {
	text = strings.TrimSpace(text)

	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start == -1 {
			continue
		}
		start += len(fence)
		end := strings.Index(text[start:], "```")
		if end == -1 {
			break
		}
		return strings.TrimSpace(text[start : start+end])
	}

	open := strings.Index(text, "{")
	close := strings.LastIndex(text, "}")
	if open != -1 && close > open {
		return text[open : close+1]
	}

	return text
}

// parseQuestionSet decodes and validates an AI question payload.
func parseQuestionSet(text string) ([]generatedQuestion, error) {
	payload := extractJSONPayload(text)

	var untyped interface{}
	if err := json.Unmarshal([]byte(payload), &untyped); err != nil {
		return nil, fmt.Errorf("decode question payload: %w", err)
	}

	if err := compiledQuestionSetSchema.Validate(untyped); err != nil {
		return nil, fmt.Errorf("question payload rejected by schema: %w", err)
	}

	var set generatedQuestionSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, fmt.Errorf("decode question payload: %w", err)
	}

	return set.Questions, nil
}
