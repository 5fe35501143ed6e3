package listener

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"reconpipe/internal/scope"
)

var rl *readline.Instance
var mu sync.Mutex

func Init() error {
	var err error
	rl, err = readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "",
		EOFPrompt:       "",
	})
	return err
}

func Close() {
	if rl != nil {
		_ = rl.Close()
	}
}

func Println(s string) {
	mu.Lock()
	defer mu.Unlock()
	if rl == nil {
		fmt.Println(s)
		return
	}
	_, _ = rl.Write([]byte(s + "\n"))
}

// Ask shows prompt and returns the trimmed answer; EOF or interrupt yield "".
func Ask(prompt string) string {
	mu.Lock()
	old := rl.Config.Prompt
	rl.SetPrompt(prompt)
	mu.Unlock()

	line, err := rl.Readline()
	if err != nil {
		line = ""
	}

	mu.Lock()
	rl.SetPrompt(old)
	mu.Unlock()
	return strings.TrimSpace(line)
}

// AskScope keeps asking until at least one scope entry is given.
func AskScope() (scope.Scope, bool) {
	Println("Define your scan scope (comma separated domains, *.wildcards, CIDRs):")
	for {
		raw := Ask("scope> ")
		if raw == "" {
			return nil, false
		}
		if s := scope.Parse(raw); len(s) > 0 {
			return s, true
		}
		Println("Scope cannot be empty.")
	}
}

func AskInstruction() string {
	Println("Enter your high-level security instructions:")
	return Ask("instruction> ")
}

func AskYesNo(question string) bool {
	Println(question + " [y/n]")
	for {
		if yes, ok := parseYesNo(Ask("> ")); ok {
			return yes
		}
		Println("Please answer y/n.")
	}
}

func parseYesNo(ans string) (yes, ok bool) {
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes":
		return true, true
	case "n", "no", "":
		return false, true
	}
	return false, false
}
