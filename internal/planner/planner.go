// Package planner turns natural-language tasks into commands by asking an LLM.
// Every answer is best-effort text; callers get cleaned values or an error,
// never a panic on malformed output.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reconpipe/internal/logger"
	"reconpipe/internal/scope"
	"reconpipe/internal/utils"
)

const defaultCallTimeout = 60 * time.Second

// Generator is the slice of an LLM backend the planner needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type LLMPlanner struct {
	gen         Generator
	callTimeout time.Duration
	outputLimit int
}

type Option func(*LLMPlanner)

// WithCallTimeout bounds each round-trip so a hung backend cannot stall a run.
func WithCallTimeout(d time.Duration) Option {
	return func(p *LLMPlanner) {
		if d > 0 {
			p.callTimeout = d
		}
	}
}

// WithOutputLimit caps how much command output is sent for task mining.
func WithOutputLimit(n int) Option {
	return func(p *LLMPlanner) {
		if n > 0 {
			p.outputLimit = n
		}
	}
}

func New(gen Generator, opts ...Option) *LLMPlanner {
	p := &LLMPlanner{gen: gen, callTimeout: defaultCallTimeout, outputLimit: defaultOutputLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *LLMPlanner) ask(ctx context.Context, kind, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	start := time.Now()
	text, err := p.gen.Generate(callCtx, prompt)
	if err != nil {
		logger.Log.Printf("[Planner] %s failed after %s: %v", kind, time.Since(start).Round(time.Millisecond), err)
		return "", fmt.Errorf("planner %s: %w", kind, err)
	}
	logger.Log.Printf("[Planner] %s answered in %s: %q", kind, time.Since(start).Round(time.Millisecond), text)
	return text, nil
}

func (p *LLMPlanner) Breakdown(ctx context.Context, instruction string, s scope.Scope) ([]string, error) {
	text, err := p.ask(ctx, "breakdown", buildBreakdownPrompt(instruction, s))
	if err != nil {
		return nil, err
	}
	return utils.SplitCommaList(text), nil
}

func (p *LLMPlanner) CommandFor(ctx context.Context, task string, s scope.Scope) (string, error) {
	text, err := p.ask(ctx, "command", buildCommandPrompt(task, s))
	if err != nil {
		return "", err
	}
	return utils.CleanLLMText(text), nil
}

// DependenciesOf returns lower-cased tool names.
func (p *LLMPlanner) DependenciesOf(ctx context.Context, command string) ([]string, error) {
	text, err := p.ask(ctx, "dependencies", buildDependenciesPrompt(command))
	if err != nil {
		return nil, err
	}
	deps := utils.SplitCommaList(utils.CleanLLMText(text))
	for i := range deps {
		deps[i] = strings.ToLower(deps[i])
	}
	return deps, nil
}

func (p *LLMPlanner) AlternativeFor(ctx context.Context, task string, s scope.Scope) (string, error) {
	text, err := p.ask(ctx, "alternative", buildAlternativePrompt(task, s))
	if err != nil {
		return "", err
	}
	return utils.CleanLLMText(text), nil
}

func (p *LLMPlanner) MineTasks(ctx context.Context, output string, s scope.Scope) ([]string, error) {
	text, err := p.ask(ctx, "mine", buildMinePrompt(CondenseOutput(output, p.outputLimit), s))
	if err != nil {
		return nil, err
	}
	return utils.SplitCommaList(text), nil
}

func (p *LLMPlanner) Prioritize(ctx context.Context, tasks []string) ([]string, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	text, err := p.ask(ctx, "prioritize", buildPrioritizePrompt(tasks))
	if err != nil {
		return nil, err
	}
	return utils.SplitCommaList(text), nil
}
