package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// XotConfig holds the configuration for the application.
type XotConfig struct {
	OpenAIAPIKey string       `mapstructure:"openai_api_key" yaml:"-"`
	LLM          LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Server       ServerConfig `mapstructure:"server" yaml:"server"`
	Layout       LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Log          LogConfig    `mapstructure:"log" yaml:"log"`
}

type LLMConfig struct {
	Model   string        `mapstructure:"model" yaml:"model"`       // Chat model name
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"` // OpenAI compatible endpoint, e.g. http://localhost:11434/v1 for Ollama
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`   // 0 means no request timeout
	Breaker BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

// UsesLocalEndpoint reports whether the model is served by a custom endpoint which does not need an API key.
func (c LLMConfig) UsesLocalEndpoint() bool {
	return c.BaseURL != ""
}

type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures" yaml:"max_failures"` // consecutive failures before the breaker opens
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`           // open state duration
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LayoutConfig struct {
	Updates int `mapstructure:"updates" yaml:"updates"` // force-directed iterations
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // rotated log file, empty for stderr only
}

// DefaultConfig returns the values used when neither a config file nor env overrides them.
func DefaultConfig() XotConfig {
	return XotConfig{
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
			Breaker: BreakerConfig{
				MaxFailures: 3,
				Timeout:     30 * time.Second,
			},
		},
		Server: ServerConfig{Addr: ":8080"},
		Layout: LayoutConfig{Updates: 100},
		Log:    LogConfig{Level: "info"},
	}
}

// cfg holds the loaded configuration.
var cfg = DefaultConfig()

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("openai_api_key", "")
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.breaker.max_failures", d.LLM.Breaker.MaxFailures)
	v.SetDefault("llm.breaker.timeout", d.LLM.Breaker.Timeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("layout.updates", d.Layout.Updates)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// InitConfig initializes the configuration using Viper.
// reader may be nil when there is no config file; env variables still apply.
func InitConfig(reader io.Reader) error {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	// XOT_LLM_MODEL overrides llm.model and so on
	v.SetEnvPrefix("xot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("openai_api_key", "OPENAI_API_KEY", "XOT_OPENAI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind environment variable: %w", err)
	}

	if reader != nil {
		if err := v.ReadConfig(reader); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var loaded XotConfig
	if err := v.Unmarshal(&loaded); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	loaded.OpenAIAPIKey = v.GetString("openai_api_key")
	cfg = loaded
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() XotConfig {
	return cfg
}

func GetServerConfig() ServerConfig {
	return cfg.Server
}

// CreateDefaultConfigFile writes DefaultConfig as YAML. The API key is never written.
func CreateDefaultConfigFile(w io.Writer) error {
	out, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
