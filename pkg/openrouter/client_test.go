package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Referer: "https://limva.vn",
		Title:   "LimVA",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestCompleteReturnsAnswer(t *testing.T) {
	var gotReferer, gotTitle string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Đáp án là 42.  "}}]}`))
	})

	answer := client.Complete(context.Background(), ModelDeepseek, []Message{
		{Role: "system", Content: "Bạn là trợ lý"},
		{Role: "user", Content: "Câu hỏi"},
	}, 100)

	require.Equal(t, "Đáp án là 42.", answer)
	require.Equal(t, "https://limva.vn", gotReferer)
	require.Equal(t, "LimVA", gotTitle)
}

func TestCompleteDegradesToApologyOnServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	})

	answer := client.Complete(context.Background(), ModelDeepseek, []Message{{Role: "user", Content: "x"}}, 100)
	require.Equal(t, Apology, answer)
}

func TestCompleteDegradesToEmptyAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	})

	answer := client.Complete(context.Background(), ModelDeepseek, []Message{{Role: "user", Content: "x"}}, 100)
	require.Equal(t, EmptyAnswer, answer)
}

func TestCompleteTreatsBlankContentAsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
	})

	answer := client.Complete(context.Background(), ModelDeepseek, []Message{{Role: "user", Content: "x"}}, 100)
	require.Equal(t, EmptyAnswer, answer)
}
