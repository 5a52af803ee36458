package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig

	// Sessions
	Auth   AuthConfig
	Cookie CookieConfig
	CORS   CORSConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Assistant pipeline
	Transcription  TranscriptionConfig
	Assistant      AssistantConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	FilePath     string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	MaxAge   int
	SameSite string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type TranscriptionConfig struct {
	Enabled     bool
	APIKey      string
	BaseURL     string
	Model       string
	MaxUploadMB int
	Timeout     time.Duration
}

type AssistantConfig struct {
	Timezone          string
	RateLimitPerMin   int
	MaxQuestionLength int
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	Timeout         time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path falls back to
// the search paths.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/app/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ReadTimeout = v.GetDuration("http_server.read_timeout")
	cfg.HTTPServer.WriteTimeout = v.GetDuration("http_server.write_timeout")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Logger.FilePath = v.GetString("logger.file_path")
	cfg.Logger.MaxSizeMB = v.GetInt("logger.max_size_mb")
	cfg.Logger.MaxBackups = v.GetInt("logger.max_backups")
	cfg.Logger.MaxAgeDays = v.GetInt("logger.max_age_days")

	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.DSN = v.GetString("database.dsn")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = v.GetDuration("database.conn_max_lifetime")
	cfg.Database.AutoMigrate = v.GetBool("database.auto_migrate")
	if dsn := v.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	// Sessions
	cfg.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	cfg.Auth.TokenTTL = v.GetDuration("auth.token_ttl")
	cfg.Auth.Issuer = v.GetString("auth.issuer")
	if secret := v.GetString("jwt_secret"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	cfg.Cookie.Name = v.GetString("cookie.name")
	cfg.Cookie.Domain = v.GetString("cookie.domain")
	cfg.Cookie.Secure = v.GetBool("cookie.secure")
	cfg.Cookie.MaxAge = v.GetInt("cookie.max_age")
	cfg.Cookie.SameSite = v.GetString("cookie.same_site")

	cfg.CORS.AllowedOrigins = splitList(v.GetStringSlice("cors.allowed_origins"))

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				providerMap, ok := p.(map[string]interface{})
				if !ok {
					continue
				}
				cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
					Name:     getStringFromMap(providerMap, "name"),
					Enabled:  getBoolFromMap(providerMap, "enabled"),
					Priority: getIntFromMap(providerMap, "priority"),
					APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
					BaseURL:  getStringFromMap(providerMap, "base_url"),
					Model:    getStringFromMap(providerMap, "model"),
					Timeout:  getStringFromMap(providerMap, "timeout"),
				})
			}
		}
	}

	// Assistant pipeline
	cfg.Transcription.Enabled = v.GetBool("transcription.enabled")
	cfg.Transcription.APIKey = expandEnvVar(v, v.GetString("transcription.api_key"))
	cfg.Transcription.BaseURL = v.GetString("transcription.base_url")
	cfg.Transcription.Model = v.GetString("transcription.model")
	cfg.Transcription.MaxUploadMB = v.GetInt("transcription.max_upload_mb")
	cfg.Transcription.Timeout = v.GetDuration("transcription.timeout")

	cfg.Assistant.Timezone = v.GetString("assistant.timezone")
	cfg.Assistant.RateLimitPerMin = v.GetInt("assistant.rate_limit_per_min")
	cfg.Assistant.MaxQuestionLength = v.GetInt("assistant.max_question_length")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timeout = v.GetDuration("google_calendar.timeout")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.read_timeout", "15s")
	v.SetDefault("http_server.write_timeout", "90s")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 28)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "todo.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.token_ttl", "168h")
	v.SetDefault("auth.issuer", "todo-assistant")
	v.SetDefault("cookie.name", "todo_session")
	v.SetDefault("cookie.max_age", 7*24*3600)
	v.SetDefault("cookie.same_site", "lax")

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")

	v.SetDefault("transcription.enabled", true)
	v.SetDefault("transcription.model", "whisper-1")
	v.SetDefault("transcription.max_upload_mb", 25)
	v.SetDefault("transcription.timeout", "60s")

	v.SetDefault("assistant.timezone", "UTC")
	v.SetDefault("assistant.rate_limit_per_min", 20)
	v.SetDefault("assistant.max_question_length", 4000)

	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.timeout", "10s")
}

func (cfg *Config) validate() error {
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		if cfg.Environment.Name == "production" {
			return fmt.Errorf("auth.jwt_secret is required in production")
		}
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	if _, err := time.LoadLocation(cfg.Assistant.Timezone); err != nil {
		return fmt.Errorf("assistant.timezone: %w", err)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// splitList flattens comma-separated entries, as env vars arrive as one string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
