package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProvider_Chat(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"verdict\":\"safe\",\"findings\":[]}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider("test-key", server.URL, "test-model")
	resp, err := p.Chat(context.Background(), &ChatRequest{
		Messages:  []Message{{Role: "user", Content: "analyze this"}},
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Content == "" || resp.FinishReason != "stop" {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("default model not applied: %v", gotBody["model"])
	}
}

func TestOpenAIProvider_ChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewOpenAIProvider("k", server.URL, "m")
	if _, err := p.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestNewOpenAIProvider_Defaults(t *testing.T) {
	p := NewOpenAIProvider("k", "", "")
	if p.apiBase != "https://api.openai.com/v1" {
		t.Fatalf("unexpected default base %q", p.apiBase)
	}
	if p.DefaultModel() == "" {
		t.Fatal("expected a default model")
	}
	trimmed := NewOpenAIProvider("k", "https://example.test/v1/", "m")
	if trimmed.apiBase != "https://example.test/v1" {
		t.Fatalf("trailing slash not trimmed: %q", trimmed.apiBase)
	}
}
