package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider("")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("got %v, want ErrNoAPIKey", err)
	}
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("got %v, want ErrNoAPIKey", err)
	}
}

func TestNewFactory(t *testing.T) {
	p, err := New(ProviderGemini, "key", "gemini-1.5-flash")
	if err != nil {
		t.Fatalf("gemini: %v", err)
	}
	if p.Name() != ProviderGemini {
		t.Fatalf("got %q, want gemini", p.Name())
	}

	p, err = New(ProviderOpenAI, "key", "")
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if p.Name() != ProviderOpenAI {
		t.Fatalf("got %q, want openai", p.Name())
	}

	if _, err := New("mystery", "key", ""); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestGeminiChat(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := geminiResponse{
			Candidates: []geminiCandidate{{
				Content: geminiContent{
					Role:  "model",
					Parts: []geminiPart{{Text: "The outlook is "}, {Text: "positive."}},
				},
				FinishReason: "STOP",
			}},
			UsageMetadata: geminiUsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 5, TotalTokenCount: 15},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, err := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	messages := []Message{
		SystemMessage("You are an analyst."),
		UserMessage("Analyze AAPL."),
	}
	resp, err := p.Chat(context.Background(), messages, &ChatOptions{
		Temperature: Temperature(0),
		MaxTokens:   4096,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	// Multi-part candidates concatenate.
	if resp.Content != "The outlook is positive." {
		t.Fatalf("got content %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("got %d tokens, want 15", resp.Usage.TotalTokens)
	}

	// System prompt must travel as system_instruction, not a content turn.
	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "You are an analyst." {
		t.Fatalf("system instruction not set: %+v", captured.SystemInstruction)
	}
	if len(captured.Contents) != 1 || captured.Contents[0].Role != "user" {
		t.Fatalf("unexpected contents: %+v", captured.Contents)
	}

	// Explicit temperature 0 must survive into generation config.
	if captured.GenerationConfig == nil || captured.GenerationConfig.Temperature == nil {
		t.Fatal("temperature 0 was dropped from generation config")
	}
	if *captured.GenerationConfig.Temperature != 0 {
		t.Fatalf("got temperature %v, want 0", *captured.GenerationConfig.Temperature)
	}
	if captured.GenerationConfig.MaxOutputTokens != 4096 {
		t.Fatalf("got max tokens %d, want 4096", captured.GenerationConfig.MaxOutputTokens)
	}
}

func TestGeminiChatRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	p, _ := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))
	_, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if !errors.Is(err, ErrRateLimit) {
		t.Fatalf("got %v, want ErrRateLimit", err)
	}
}

func TestGeminiChatEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	p, _ := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))
	_, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("got %v, want ErrEmptyResponse", err)
	}
}

func TestOpenAIChat(t *testing.T) {
	var captured openAIChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"model": "gpt-4o-2024-08-06",
			"choices": [{"message": {"role": "assistant", "content": "HOLD"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 2, "total_tokens": 22}
		}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Chat(context.Background(), []Message{
		SystemMessage("You are a strategist."),
		UserMessage("Decide."),
	}, &ChatOptions{Model: "gpt-4o", MaxTokens: 256})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.Content != "HOLD" {
		t.Fatalf("got content %q", resp.Content)
	}
	if resp.Model != "gpt-4o-2024-08-06" {
		t.Fatalf("got model %q", resp.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if captured.MaxTokens != 256 {
		t.Fatalf("got max tokens %d, want 256", captured.MaxTokens)
	}
}

func TestOpenAIChatUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	p, _ := NewOpenAIProvider("bad-key", WithOpenAIBaseURL(server.URL))
	_, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("got %v, want ErrNoAPIKey", err)
	}
}

func TestResponseString(t *testing.T) {
	r := &Response{Content: "short answer", Provider: "gemini", Model: "gemini-2.0-flash"}
	s := r.String()
	if !strings.Contains(s, "gemini-2.0-flash") || !strings.Contains(s, "short answer") {
		t.Fatalf("got %q", s)
	}
}
