package planner

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"reconpipe/internal/scope"
)

type cannedGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *cannedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("planner call without a deadline")
	}
	return g.answer, g.err
}

var testScope = scope.Scope{"google.com", "*.example.com", "192.168.1.0/24"}

func TestBreakdown(t *testing.T) {
	gen := &cannedGenerator{answer: "Scan google.com for open ports, Enumerate directories on google.com, "}
	p := New(gen)

	tasks, err := p.Breakdown(context.Background(), "Scan google.com for open ports and discover directories", testScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Scan google.com for open ports", "Enumerate directories on google.com"}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("mismatched tasks:\n got:  %q\n want: %q", tasks, want)
	}
	if !strings.Contains(gen.prompts[0], "Scope: google.com, *.example.com, 192.168.1.0/24") {
		t.Errorf("breakdown prompt is missing the scope line:\n%s", gen.prompts[0])
	}
}

func TestCommandForStripsFences(t *testing.T) {
	gen := &cannedGenerator{answer: "```bash\nnmap -sV google.com\n```"}
	cmd, err := New(gen).CommandFor(context.Background(), "Scan ports", testScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != "nmap -sV google.com" {
		t.Errorf("expected cleaned command, got %q", cmd)
	}
	if !strings.Contains(gen.prompts[0], "Supported tools: nmap, dirb, gobuster, ffuf, sqlmap.") {
		t.Error("command prompt is missing the supported tools line")
	}
}

func TestDependenciesOfLowercases(t *testing.T) {
	gen := &cannedGenerator{answer: "Nmap, GOBUSTER ,"}
	deps, err := New(gen).DependenciesOf(context.Background(), "nmap google.com && gobuster dir -u google.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(deps, []string{"nmap", "gobuster"}) {
		t.Errorf("unexpected dependencies %q", deps)
	}
}

func TestMalformedAnswersBecomeEmpty(t *testing.T) {
	gen := &cannedGenerator{answer: " , ,\n"}
	p := New(gen)

	mined, err := p.MineTasks(context.Background(), "Discovered open ports: 80, 443", testScope)
	if err != nil || len(mined) != 0 {
		t.Errorf("expected no mined tasks and no error, got %q, %v", mined, err)
	}
	ranked, err := p.Prioritize(context.Background(), []string{"a", "b"})
	if err != nil || len(ranked) != 0 {
		t.Errorf("expected no ranked tasks and no error, got %q, %v", ranked, err)
	}
}

func TestPrioritizeEmptySkipsBackend(t *testing.T) {
	gen := &cannedGenerator{answer: "x"}
	ranked, err := New(gen).Prioritize(context.Background(), nil)
	if err != nil || ranked != nil {
		t.Errorf("expected nil result, got %q, %v", ranked, err)
	}
	if len(gen.prompts) != 0 {
		t.Error("prioritizing nothing should not call the backend")
	}
}

func TestBackendErrorIsWrapped(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &cannedGenerator{err: boom}
	_, err := New(gen, WithCallTimeout(time.Second)).AlternativeFor(context.Background(), "Scan ports", testScope)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if !strings.Contains(err.Error(), "alternative") {
		t.Errorf("error should name the failing call, got %q", err)
	}
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestCallTimeout(t *testing.T) {
	p := New(slowGenerator{}, WithCallTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := p.CommandFor(context.Background(), "Scan ports", testScope)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("planner call was not bounded by its timeout")
	}
}
