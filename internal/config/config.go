package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	ProviderMock   = "mock"
	ProviderOllama = "ollama"
)

// DefaultMockReply is the canned assistant answer used when no real completion backend is configured.
const DefaultMockReply = "This is a mock AI response. In the full version, this would connect to a real AI model to provide intelligent responses to your questions."

type Config struct {
	AppPort           int           `mapstructure:"APP_PORT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	StoreDriver       string        `mapstructure:"STORE_DRIVER"`
	DatabasePath      string        `mapstructure:"DATABASE_PATH"`
	LLMProvider       string        `mapstructure:"LLM_PROVIDER"`
	OllamaURL         string        `mapstructure:"OLLAMA_URL"`
	OllamaModel       string        `mapstructure:"OLLAMA_MODEL"`
	ReplyDelay        time.Duration `mapstructure:"REPLY_DELAY"`
	MockReply         string        `mapstructure:"MOCK_REPLY"`
	CompletionTimeout time.Duration `mapstructure:"COMPLETION_TIMEOUT"`
	SeedMockData      bool          `mapstructure:"SEED_MOCK_DATA"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// ConfigFile is the .env file that was read, empty when only the environment was used.
	ConfigFile string `mapstructure:"-"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DATABASE_PATH", "file:chatshell?mode=memory&cache=shared")
	v.SetDefault("LLM_PROVIDER", ProviderMock)
	v.SetDefault("OLLAMA_URL", "http://ollama:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3.2")
	v.SetDefault("REPLY_DELAY", 1500*time.Millisecond)
	v.SetDefault("MOCK_REPLY", DefaultMockReply)
	v.SetDefault("COMPLETION_TIMEOUT", 60*time.Second)
	v.SetDefault("SEED_MOCK_DATA", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return errors.New("STORE_DRIVER must be one of: memory, sqlite")
	}
	switch c.LLMProvider {
	case ProviderMock, ProviderOllama:
	default:
		return errors.New("LLM_PROVIDER must be one of: mock, ollama")
	}
	if c.ReplyDelay < 0 {
		return errors.New("REPLY_DELAY must not be negative")
	}
	if c.CompletionTimeout <= 0 {
		return errors.New("COMPLETION_TIMEOUT must be positive")
	}
	return nil
}
