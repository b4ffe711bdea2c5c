package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Scheduling SchedulingConfig
	Classifier ClassifierConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// SchedulingConfig configures the external scheduling service client and
// the negotiation presentation limits.
type SchedulingConfig struct {
	BaseURL           string
	Timeout           time.Duration
	ScanWindowDays    int
	SameDayLimit      int
	MultiDayLimit     int
	MultiDayTimeLimit int
}

// ClassifierConfig configures the upstream intent classifier and the retry
// policy applied around classification calls.
type ClassifierConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	schedulingTimeout, err := time.ParseDuration(viper.GetString("SCHEDULING_TIMEOUT"))
	if err != nil {
		schedulingTimeout = 10 * time.Second
	}

	retryDelay, err := time.ParseDuration(viper.GetString("CLASSIFIER_RETRY_DELAY"))
	if err != nil {
		retryDelay = 1 * time.Second
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Scheduling: SchedulingConfig{
			BaseURL:           viper.GetString("SCHEDULING_API_URL"),
			Timeout:           schedulingTimeout,
			ScanWindowDays:    intOrDefault("SCAN_WINDOW_DAYS", 5),
			SameDayLimit:      intOrDefault("SAME_DAY_DISPLAY_LIMIT", 5),
			MultiDayLimit:     intOrDefault("MULTI_DAY_DISPLAY_DAYS", 3),
			MultiDayTimeLimit: intOrDefault("MULTI_DAY_DISPLAY_TIMES", 3),
		},
		Classifier: ClassifierConfig{
			APIKey:     viper.GetString("GEMINI_API_KEY"),
			Model:      stringOrDefault("GEMINI_MODEL", "models/gemini-1.5-pro"),
			MaxRetries: intOrDefault("CLASSIFIER_MAX_RETRIES", 2),
			RetryDelay: retryDelay,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
	}

	return config, nil
}

func intOrDefault(key string, def int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return def
}

func stringOrDefault(key string, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}
