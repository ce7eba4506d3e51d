package openrouter

import "github.com/limva/limva-api/internal/models"

// OpenRouter model identifiers for the choices exposed in admin settings.
const (
	ModelDeepseek = "deepseek/deepseek-r1-distill-qwen-14b:free"
	ModelGPT      = "openai/gpt-5-chat"
	ModelGemma    = "google/gemma-3n-e2b-it:free"
	ModelGPTOss   = "openai/gpt-oss-20b:free"
)

// ModelID maps an admin model choice to the OpenRouter model identifier.
// Unknown choices fall back to the free DeepSeek model.
func ModelID(choice string) string {
	switch choice {
	case models.AIModelDeepseek:
		return ModelDeepseek
	case models.AIModelGPT:
		return ModelGPT
	case models.AIModelGemma:
		return ModelGemma
	case models.AIModelGPTOss:
		return ModelGPTOss
	default:
		return ModelDeepseek
	}
}

// ModelName returns the display name for an admin model choice.
func ModelName(choice string) string {
	switch choice {
	case models.AIModelDeepseek:
		return "DeepSeek R1"
	case models.AIModelGPT:
		return "GPT-5"
	case models.AIModelGemma:
		return "Google Gemma 3B"
	case models.AIModelGPTOss:
		return "GPT OSS 20B"
	default:
		return "Không xác định"
	}
}
