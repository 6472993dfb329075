package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeCloud Mode = "cloud"
)

const (
	ProviderMock   = "mock"
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
)

type LLMConfig struct {
	Provider       string // "mock", "gemini" or "vertex"
	APIKey         string
	GCPProjectID   string
	GCPLocation    string
	ModelName      string
	ThinkingBudget int32
}

type Config struct {
	Mode Mode

	Port string

	LLM LLMConfig

	SeedFile       string // empty = built-in sample data
	LogLevel       string
	MetricsEnabled bool
}

// NewViper returns a viper instance reading OMNI_* env vars with the
// defaults below. Flags can be bound on top with BindPFlag.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("OMNI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("seed_file", "")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.gcp_project", "")
	v.SetDefault("llm.gcp_location", "us-central1")
	v.SetDefault("llm.model", "gemini-3-flash-preview")
	v.SetDefault("llm.thinking_budget", 5000)

	// the hosted client historically read a bare API_KEY
	_ = v.BindEnv("llm.api_key", "OMNI_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY")

	return v
}

// Load builds the config from v. When config_file is set the YAML file is
// read first and env/flags still win.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var mode Mode
	switch strings.ToLower(v.GetString("mode")) {
	case "cloud", "gcp":
		mode = ModeCloud
	default:
		mode = ModeLocal
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	if provider == "" {
		if mode == ModeLocal {
			provider = ProviderMock
		} else {
			provider = ProviderGemini
		}
	}

	cfg := &Config{
		Mode: mode,
		Port: v.GetString("port"),
		LLM: LLMConfig{
			Provider:       provider,
			APIKey:         v.GetString("llm.api_key"),
			GCPProjectID:   v.GetString("llm.gcp_project"),
			GCPLocation:    v.GetString("llm.gcp_location"),
			ModelName:      v.GetString("llm.model"),
			ThinkingBudget: v.GetInt32("llm.thinking_budget"),
		},
		SeedFile:       v.GetString("seed_file"),
		LogLevel:       v.GetString("log_level"),
		MetricsEnabled: v.GetBool("metrics_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider-specific requirements. A gemini provider without
// an API key is allowed: the client is then reported as unavailable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	switch c.LLM.Provider {
	case ProviderMock, ProviderGemini:
	case ProviderVertex:
		if c.LLM.GCPProjectID == "" || c.LLM.GCPLocation == "" {
			return fmt.Errorf("OMNI_LLM_GCP_PROJECT and OMNI_LLM_GCP_LOCATION must be set for the vertex provider")
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.LLM.ThinkingBudget < 0 {
		return fmt.Errorf("llm thinking budget must not be negative")
	}
	return nil
}
