package llm_client

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotInitialized = errors.New("llm client not initialized")

type Config struct {
	Backend    string
	Model      string
	APIKey     string
	OllamaHost string
}

// Provider is one text-generation backend. Responses are raw model text.
type Provider interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds and initializes the backend named by cfg.Backend (gemini by default).
func New(cfg Config) (Provider, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "gemini"
	}
	switch backend {
	case "gemini":
		p := &geminiProvider{}
		if err := p.init(cfg); err != nil {
			return nil, err
		}
		return p, nil
	case "ollama":
		p := &ollamaProvider{}
		if err := p.init(cfg); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM backend: %s", backend)
	}
}
