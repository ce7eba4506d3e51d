package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Apology is returned to callers whenever the upstream call fails. Consumers
// receive it as a normal response; there is no error channel for AI output.
const Apology = "Xin lỗi, có lỗi xảy ra khi xử lý yêu cầu của bạn."

// EmptyAnswer is returned when the upstream responds without usable content.
const EmptyAnswer = "Xin lỗi, tôi không thể trả lời câu hỏi này."

const defaultBaseURL = "https://openrouter.ai/api/v1"

var (
	completionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "limva",
		Subsystem: "openrouter",
		Name:      "completion_duration_seconds",
		Help:      "Duration of OpenRouter chat completion requests",
	}, []string{"model"})

	completionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "limva",
		Subsystem: "openrouter",
		Name:      "completion_failures_total",
		Help:      "Number of failed OpenRouter chat completion requests",
	}, []string{"model"})
)

// Message is one turn of a chat completion conversation.
type Message struct {
	Role    string
	Content string
}

// Config holds the OpenRouter connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Referer string
	Title   string
	Logger  zerolog.Logger
}

// Client issues chat completion requests against the OpenRouter API, which
// speaks the OpenAI wire protocol.
type Client struct {
	client *openai.Client
	tracer trace.Tracer
	logger zerolog.Logger
}

type attributionTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// New constructs an OpenRouter client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Transport: &attributionTransport{referer: cfg.Referer, title: cfg.Title},
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		tracer: otel.Tracer("github.com/limva/limva-api/pkg/openrouter"),
		logger: cfg.Logger.With().Str("component", "openrouter").Logger(),
	}, nil
}

// Complete sends a chat completion request and returns the answer text.
// Failures never surface as errors: transport problems and empty responses
// degrade to fixed Vietnamese sentinel strings.
func (c *Client) Complete(parent context.Context, model string, messages []Message, maxTokens int) string {
	ctx, span := c.tracer.Start(parent, "openrouter.complete", trace.WithAttributes(
		attribute.String("model", model),
		attribute.Int("max_tokens", maxTokens),
	))
	defer span.End()

	if maxTokens <= 0 {
		maxTokens = 1000
	}

	request := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	completionDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	if err != nil {
		completionFailures.WithLabelValues(model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().Err(err).Str("model", model).Msg("openrouter completion failed")
		return Apology
	}

	if len(resp.Choices) == 0 {
		completionFailures.WithLabelValues(model).Inc()
		span.SetStatus(codes.Error, "no choices returned")
		c.logger.Error().Str("model", model).Msg("openrouter returned no choices")
		return EmptyAnswer
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return EmptyAnswer
	}

	return content
}
