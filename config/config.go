package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling configuration. Timezone is the default business zone;
	// individual salons may override it in their profile.
	Timezone            string `mapstructure:"TIMEZONE"`
	SlotIntervalMinutes int    `mapstructure:"SLOT_INTERVAL_MINUTES"`
	SlotCacheTTLSeconds int    `mapstructure:"SLOT_CACHE_TTL_SECONDS"`

	// Google Calendar OAuth credentials (the app's client, not per-salon).
	GoogleOAuthClientID     string `mapstructure:"GOOGLE_OAUTH_CLIENT_ID"`
	GoogleOAuthClientSecret string `mapstructure:"GOOGLE_OAUTH_CLIENT_SECRET"`
	CalendarTimeoutSeconds  int    `mapstructure:"CALENDAR_TIMEOUT_SECONDS"`
	CalendarListRetries     int    `mapstructure:"CALENDAR_LIST_RETRIES"`
	CalendarCheckRetries    int    `mapstructure:"CALENDAR_CHECK_RETRIES"`

	// Reminder sweep windows.
	ReminderLeadMinutes  int `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderSweepMinutes int `mapstructure:"REMINDER_SWEEP_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonbook")
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("SLOT_INTERVAL_MINUTES", 30)
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CALENDAR_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CALENDAR_LIST_RETRIES", 2)
	viper.SetDefault("CALENDAR_CHECK_RETRIES", 3)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("REMINDER_SWEEP_MINUTES", 10)

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

// Location loads the configured default business time zone.
func Location() (*time.Location, error) {
	return time.LoadLocation(AppConfig.Timezone)
}
