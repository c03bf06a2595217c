package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Generation   GenerationConfig   `mapstructure:"generation"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Feed         FeedConfig         `mapstructure:"feed"`
	Seed         SeedConfig         `mapstructure:"seed"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Locale  string `mapstructure:"locale"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GenerationConfig configures the text generation collaborator used by activity drafts.
type GenerationConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RegistrationConfig holds the policies left open by the registration workflow.
// Both default to false, which keeps the permissive behaviour.
type RegistrationConfig struct {
	EnforceCapacityOnAccept bool `mapstructure:"enforce_capacity_on_accept"`
	UpsertOnRegister        bool `mapstructure:"upsert_on_register"`
}

type FeedConfig struct {
	HomeSize int `mapstructure:"home_size"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var (
	mu       sync.RWMutex
	instance *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "outings-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.locale", "fr-FR")
	v.SetDefault("app.version", "dev")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 45*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "gemini-2.5-flash")
	v.SetDefault("generation.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generation.temperature", 0.8)
	v.SetDefault("generation.timeout", 30*time.Second)

	v.SetDefault("registration.enforce_capacity_on_accept", false)
	v.SetDefault("registration.upsert_on_register", false)

	v.SetDefault("feed.home_size", 3)
	v.SetDefault("seed.enabled", true)
}

// Load reads defaults, an optional config file, .env and the process environment.
// Environment keys use the dotted path with "_" (GENERATION_MODEL, SERVER_PORT...).
// The API credential is also accepted as API_KEY or GEMINI_API_KEY.
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("generation.api_key", "GENERATION_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Feed.HomeSize <= 0 {
		cfg.Feed.HomeSize = 3
	}
	return &cfg, nil
}

// Init loads the configuration and installs it as the process config.
func Init(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	Set(cfg)
	return cfg, nil
}

func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get returns the process config. It panics when Init was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
