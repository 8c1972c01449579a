package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	DefaultLang       string `mapstructure:"DEFAULT_LANG"`

	// Gemini. API_KEY is the variable name the web client used.
	GeminiAPIKey            string `mapstructure:"GEMINI_API_KEY"`
	LegacyAPIKey            string `mapstructure:"API_KEY"`
	GeminiModel             string `mapstructure:"GEMINI_MODEL"`
	AIRequestTimeoutSeconds int    `mapstructure:"AI_REQUEST_TIMEOUT_SECONDS"`

	// Conversation store: "memory" or "redis".
	ConversationStore      string `mapstructure:"CONVERSATION_STORE"`
	ConversationTTLMinutes int    `mapstructure:"CONVERSATION_TTL_MINUTES"`
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	RedisPassword          string `mapstructure:"REDIS_PASSWORD"`
	RedisAIDB              int    `mapstructure:"REDIS_AI_DB"`
}

var AppConfig Config

// configKeys are bound explicitly so Unmarshal sees env-only values.
var configKeys = []string{
	"APP_PORT", "ENV", "LOG_LEVEL", "MAX_REQUESTS_PER_MIN", "DEFAULT_LANG",
	"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "AI_REQUEST_TIMEOUT_SECONDS",
	"CONVERSATION_STORE", "CONVERSATION_TTL_MINUTES",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_AI_DB",
}

func LoadConfig() {
	// A local .env is optional; values already in the environment win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DEFAULT_LANG", "en")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AI_REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CONVERSATION_STORE", "memory")
	viper.SetDefault("CONVERSATION_TTL_MINUTES", 120)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AI_DB", 3)

	for _, key := range configKeys {
		if err := viper.BindEnv(key); err != nil {
			log.Fatalf("Failed to bind %s: %v", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// GeminiKey returns the configured credential, preferring GEMINI_API_KEY.
func (c Config) GeminiKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.LegacyAPIKey
}

func (c Config) AIRequestTimeout() time.Duration {
	if c.AIRequestTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AIRequestTimeoutSeconds) * time.Second
}

func (c Config) ConversationTTL() time.Duration {
	return time.Duration(c.ConversationTTLMinutes) * time.Minute
}
