package llm_client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ollama/ollama/api"
)

type ollamaProvider struct {
	client *api.Client
	model  string
}

const (
	ollamaDefault     = "llama3.1:8b"
	ollamaDefaultHost = "http://localhost:11434"
)

func (p *ollamaProvider) init(cfg Config) error {
	host := strings.TrimSpace(cfg.OllamaHost)
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			host = ollamaDefaultHost
		} else {
			p.client = c
		}
	}
	if p.client == nil {
		u, err := url.Parse(host)
		if err != nil {
			return fmt.Errorf("ollama: bad host %q: %w", host, err)
		}
		p.client = api.NewClient(u, http.DefaultClient)
	}
	if m := strings.TrimSpace(cfg.Model); m != "" {
		p.model = m
	} else {
		p.model = ollamaDefault
	}
	return nil
}

func (p *ollamaProvider) Name() string  { return "ollama" }
func (p *ollamaProvider) Model() string { return p.model }

func (p *ollamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", ErrNotInitialized
	}
	stream := false
	req := &api.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: &stream,
	}
	var out strings.Builder
	if err := p.client.Generate(ctx, req, func(gr api.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}
