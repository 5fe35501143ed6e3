package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reconpipe/internal/audit"
	"reconpipe/internal/deps"
	"reconpipe/internal/display"
	"reconpipe/internal/listener"
	"reconpipe/internal/llm_client"
	"reconpipe/internal/logger"
	"reconpipe/internal/metrics"
	"reconpipe/internal/orchestrator"
	"reconpipe/internal/planner"
	"reconpipe/internal/runner"
	"reconpipe/internal/scope"
)

var assumeYes bool

var runCmd = &cobra.Command{
	Use:   "run [INSTRUCTION]",
	Short: "Plan and execute an instruction against the authorized scope",
	Long: `Break INSTRUCTION into tasks and execute them one at a time. Missing
scope or instruction are asked for interactively when stdin is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runInstruction(ctx, cmd, strings.TrimSpace(strings.Join(args, " ")))
	},
}

func init() {
	f := runCmd.Flags()
	f.BoolVarP(&assumeYes, "yes", "y", false, "execute the proposed tasks without asking")
	f.String("backend", "", "LLM backend: gemini or ollama")
	f.String("model", "", "LLM model name")
	f.Duration("command-timeout", 0, "wall-clock limit per command")
	f.Int("max-retries", 0, "failures allowed across the run before a branch is abandoned")
	f.Int("max-generations", 0, "follow-up task generations allowed per run")
	f.Int("max-iterations", 0, "orchestrator iterations allowed per run")
	f.String("audit-backend", "", "audit trail backend: file, sqlite or none")
	f.String("audit-path", "", "audit trail file or database path")
	f.String("metrics-textfile", "", "write prometheus metrics here when the run ends")

	for key, flag := range map[string]string{
		"llm.backend":         "backend",
		"llm.model":           "model",
		"run.command_timeout": "command-timeout",
		"run.max_retries":     "max-retries",
		"run.max_generations": "max-generations",
		"run.max_iterations":  "max-iterations",
		"audit.backend":       "audit-backend",
		"audit.path":          "audit-path",
		"metrics.textfile":    "metrics-textfile",
	} {
		mustBind(key, f.Lookup(flag))
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func runInstruction(ctx context.Context, cmd *cobra.Command, instruction string) error {
	out := cmd.OutOrStdout()
	s := scope.Scope(cfg.Scope)
	interactive := readline.IsTerminal(int(os.Stdin.Fd()))

	if interactive && (len(s) == 0 || instruction == "" || !assumeYes) {
		if err := listener.Init(); err != nil {
			return fmt.Errorf("failed to init terminal input: %w", err)
		}
		defer listener.Close()
	}
	if len(s) == 0 && interactive {
		s, _ = listener.AskScope()
	}
	if len(s) == 0 {
		return fmt.Errorf("scope is required, pass --scope or set it in the config")
	}
	if instruction == "" && interactive {
		instruction = listener.AskInstruction()
	}
	if instruction == "" {
		return fmt.Errorf("an instruction is required")
	}

	provider, err := llm_client.New(llm_client.Config{
		Backend:    cfg.LLM.Backend,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		OllamaHost: cfg.LLM.OllamaHost,
	})
	if err != nil {
		return fmt.Errorf("could not initialize LLM client: %w", err)
	}
	logger.Log.Printf("[CLI] Using %s model %s", provider.Name(), provider.Model())

	sink, err := audit.Open(cfg.Audit.Backend, cfg.Audit.Path)
	if err != nil {
		return err
	}
	defer sink.Close()

	collector := metrics.NewCollector()
	orch := orchestrator.New(
		planner.New(provider, planner.WithCallTimeout(cfg.LLM.CallTimeout)),
		deps.NewChecker(),
		runner.New(cfg.Run.PollInterval),
		orchestrator.WithLimits(orchestrator.Limits{
			MaxIterations:  cfg.Run.MaxIterations,
			MaxRetries:     cfg.Run.MaxRetries,
			MaxGenerations: cfg.Run.MaxGenerations,
			CommandTimeout: cfg.Run.CommandTimeout,
		}),
		orchestrator.WithAuditSink(sink),
		orchestrator.WithCollector(collector),
	)

	fmt.Fprintln(out, "Breaking down the instruction ...")
	st, err := orch.Begin(ctx, instruction, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, display.FormatTaskList(instruction, s, st.Queue.Items()))
	if st.Queue.Len() == 0 {
		return nil
	}
	if interactive && !assumeYes && !listener.AskYesNo("Execute these tasks?") {
		fmt.Fprintf(out, "[Run %s REJECTED]\n", st.ID)
		return nil
	}

	fmt.Fprintf(out, "[Run %s STARTED]\n", st.ID)
	orch.Drive(ctx, st)

	fmt.Fprintln(out, display.FormatReport(st))
	fmt.Fprintln(out, display.FormatRunMetrics(&st.Metrics))
	logger.Log.Printf("Run %s report (FULL):\n%s", st.ID, display.FormatReportFull(st))

	if cfg.Audit.Backend != "none" {
		fmt.Fprintf(out, "Audit trail saved to %s\n", cfg.Audit.Path)
	}
	if path := cfg.Metrics.Textfile; path != "" {
		if err := collector.WriteTextfile(path); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
