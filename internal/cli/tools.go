package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reconpipe/internal/deps"
	"reconpipe/internal/scope"
)

var checkScopeCmd = &cobra.Command{
	Use:   "check-scope TARGET...",
	Short: "Report whether targets fall inside the configured scope",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := scope.Scope(cfg.Scope)
		if len(s) == 0 {
			return fmt.Errorf("no scope configured, pass --scope")
		}
		for _, target := range args {
			verdict := "out of scope"
			if s.Contains(target) {
				verdict = "in scope"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", target, verdict)
		}
		return nil
	},
}

var extractTargetCmd = &cobra.Command{
	Use:   "extract-target COMMAND",
	Short: "Show the target each sub-command would be checked against",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := scope.Scope(cfg.Scope)
		for _, sub := range scope.SplitCommands(strings.Join(args, " ")) {
			target, ok := scope.ExtractTarget(sub)
			switch {
			case !ok:
				fmt.Fprintf(cmd.OutOrStdout(), "%q: no target\n", sub)
			case len(s) == 0:
				fmt.Fprintf(cmd.OutOrStdout(), "%q: %s\n", sub, target)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%q: %s (in scope: %v)\n", sub, target, s.Contains(target))
			}
		}
		return nil
	},
}

var whichCmd = &cobra.Command{
	Use:   "which TOOL...",
	Short: "Check whether tools are installed (PATH, then WSL on Windows)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := deps.NewChecker()
		for _, tool := range args {
			status := "missing"
			if checker.IsInstalled(cmd.Context(), strings.ToLower(tool)) {
				status = "installed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", tool, status)
		}
		return nil
	},
}
