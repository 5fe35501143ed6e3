package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reconpipe/internal/config"
	"reconpipe/internal/logger"
)

var (
	v       = viper.New()
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reconpipe",
	Short: "LLM-planned reconnaissance with scope enforcement",
	Long: `reconpipe breaks a high-level security instruction into tasks, turns each
task into a shell command, refuses anything outside the authorized scope and
feeds successful output back into the queue, under fixed iteration, retry and
generation caps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Init(cfg.Log.File); err != nil {
			return fmt.Errorf("could not initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./reconpipe.yaml or ./config/reconpipe.yaml)")
	rootCmd.PersistentFlags().StringSlice("scope", nil, "authorized targets: domains, *.wildcards, CIDRs (comma separated)")
	rootCmd.PersistentFlags().String("log-file", "", "run log path")
	mustBind("scope", rootCmd.PersistentFlags().Lookup("scope"))
	mustBind("log.file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(runCmd, checkScopeCmd, extractTargetCmd, whichCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
