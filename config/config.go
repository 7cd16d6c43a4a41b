package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	MaxInputLength int             `mapstructure:"max_input_length"`
	Port           int             `mapstructure:"port"`
	LogLevel       string          `mapstructure:"log_level"`
	Generator      GeneratorConfig `mapstructure:"generator"`
	Spam           SpamConfig      `mapstructure:"spam"`
	Registry       RegistryConfig  `mapstructure:"registry"`
}

// GeneratorConfig selects and tunes the text generation model.
type GeneratorConfig struct {
	Model         string        `mapstructure:"model"`
	Backend       string        `mapstructure:"backend"`
	RemoteURL     string        `mapstructure:"remote_url"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"`
	Device        string        `mapstructure:"device"`
	Seed          int64         `mapstructure:"seed"`
}

// SpamConfig locates the spam classifier artifact.
type SpamConfig struct {
	ModelPath string `mapstructure:"model_path"`
	Port      int    `mapstructure:"port"`
}

// RegistryConfig locates the local model registry. An empty Dir means the
// registry default.
type RegistryConfig struct {
	Dir string `mapstructure:"dir"`
}

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_input_length", 512)
	v.SetDefault("port", 5000)
	v.SetDefault("log_level", "info")
	v.SetDefault("generator.model", "models/generator.json")
	v.SetDefault("generator.backend", BackendLocal)
	v.SetDefault("generator.remote_url", "")
	v.SetDefault("generator.remote_timeout", "0s")
	v.SetDefault("generator.device", "auto")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("spam.model_path", "models/spam_detector.json")
	v.SetDefault("spam.port", 5002)
	v.SetDefault("registry.dir", "")
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment. Variables from envFiles (dotenv format) are exported first;
// missing env files are skipped. Nested keys map to upper-case variables
// with dots replaced by underscores, e.g. GENERATOR_BACKEND.
func Load(configFile string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.MaxInputLength <= 0 {
		return fmt.Errorf("max_input_length must be positive, got %d", c.MaxInputLength)
	}
	if err := validPort("port", c.Port); err != nil {
		return err
	}
	if err := validPort("spam.port", c.Spam.Port); err != nil {
		return err
	}
	switch c.Generator.Backend {
	case BackendLocal:
		if c.Generator.Model == "" {
			return errors.New("generator.model is required for the local backend")
		}
	case BackendRemote:
		if c.Generator.RemoteURL == "" {
			return errors.New("generator.remote_url is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown generator.backend %q (want %s or %s)", c.Generator.Backend, BackendLocal, BackendRemote)
	}
	if c.Generator.RemoteTimeout < 0 {
		return fmt.Errorf("generator.remote_timeout must not be negative, got %s", c.Generator.RemoteTimeout)
	}
	return nil
}

func validPort(key string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be in 1..65535, got %d", key, port)
	}
	return nil
}
