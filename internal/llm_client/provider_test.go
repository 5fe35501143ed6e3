package llm_client

import (
	"context"
	"errors"
	"testing"
)

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(Config{Backend: "openai"}); err == nil {
		t.Error("expected an error for an unsupported backend")
	}
}

func TestNewOllamaDefaults(t *testing.T) {
	p, err := New(Config{Backend: "ollama", OllamaHost: "http://127.0.0.1:11434"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected ollama backend, got %s", p.Name())
	}
	if p.Model() != ollamaDefault {
		t.Errorf("expected default model %s, got %s", ollamaDefault, p.Model())
	}
}

func TestGeminiModelOrDefault(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"", geminiDefault},
		{"gpt-4o", geminiDefault},
		{"gemini-1.5-pro", "gemini-1.5-pro"},
		{"  Gemini-2.5-flash ", "Gemini-2.5-flash"},
	}
	for _, tc := range testCases {
		if got := geminiModelOrDefault(tc.in); got != tc.want {
			t.Errorf("geminiModelOrDefault(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUninitializedProvidersFail(t *testing.T) {
	for _, p := range []Provider{&geminiProvider{}, &ollamaProvider{}} {
		if _, err := p.Generate(context.Background(), "hi"); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%T: expected ErrNotInitialized, got %v", p, err)
		}
	}
}
