// Package config loads run settings from defaults, an optional file,
// RECONPIPE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"reconpipe/internal/scope"
)

const EnvPrefix = "RECONPIPE"

type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Run     RunConfig     `mapstructure:"run"`
	Audit   AuditConfig   `mapstructure:"audit"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Scope   []string      `mapstructure:"scope"`
}

type LLMConfig struct {
	Backend     string        `mapstructure:"backend"` // gemini or ollama
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	OllamaHost  string        `mapstructure:"ollama_host"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

type RunConfig struct {
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxRetries     int           `mapstructure:"max_retries"`
	MaxGenerations int           `mapstructure:"max_generations"`
	MaxIterations  int           `mapstructure:"max_iterations"`
}

type AuditConfig struct {
	Backend string `mapstructure:"backend"` // file, sqlite or none
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.backend", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.ollama_host", "http://localhost:11434")
	v.SetDefault("llm.call_timeout", 60*time.Second)
	v.SetDefault("run.command_timeout", 10*time.Second)
	v.SetDefault("run.poll_interval", 100*time.Millisecond)
	v.SetDefault("run.max_retries", 3)
	v.SetDefault("run.max_generations", 5)
	v.SetDefault("run.max_iterations", 50)
	v.SetDefault("audit.backend", "file")
	v.SetDefault("audit.path", "audit_log.txt")
	v.SetDefault("log.file", "reconpipe.log")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("scope", []string{})
}

// Load reads configuration into v. A missing config file is fine when path
// is empty; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path == "" {
		v.SetConfigName("reconpipe")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Scope = normalizeScope(cfg.Scope)
	cfg.LLM.Backend = strings.ToLower(strings.TrimSpace(cfg.LLM.Backend))
	cfg.Audit.Backend = strings.ToLower(strings.TrimSpace(cfg.Audit.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalizeScope trims entries from flags, env and files the way typed scope
// input is handled, so " *.example.com" still matches as a wildcard.
func normalizeScope(entries []string) []string {
	return []string(scope.Parse(strings.Join(entries, ",")))
}

func (c *Config) Validate() error {
	var errs []error
	switch c.LLM.Backend {
	case "gemini", "ollama":
	default:
		errs = append(errs, fmt.Errorf("llm.backend: unsupported value %q", c.LLM.Backend))
	}
	switch c.Audit.Backend {
	case "file", "sqlite":
		if strings.TrimSpace(c.Audit.Path) == "" {
			errs = append(errs, fmt.Errorf("audit.path: required for the %s backend", c.Audit.Backend))
		}
	case "none":
	default:
		errs = append(errs, fmt.Errorf("audit.backend: unsupported value %q", c.Audit.Backend))
	}
	for key, d := range map[string]time.Duration{
		"llm.call_timeout":    c.LLM.CallTimeout,
		"run.command_timeout": c.Run.CommandTimeout,
		"run.poll_interval":   c.Run.PollInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %s", key, d))
		}
	}
	for key, n := range map[string]int{
		"run.max_retries":     c.Run.MaxRetries,
		"run.max_generations": c.Run.MaxGenerations,
		"run.max_iterations":  c.Run.MaxIterations,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %d", key, n))
		}
	}
	return errors.Join(errs...)
}
