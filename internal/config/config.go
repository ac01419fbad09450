package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings
type Config struct {
	HTTPPort  string `yaml:"httpPort"`
	MongoURI  string `yaml:"mongoUri"`
	MongoDB   string `yaml:"mongoDb"`
	RedisAddr string `yaml:"redisAddr"`
	LogMode   string `yaml:"logMode"`

	JWTSecret    string `yaml:"-"`
	UserName     string `yaml:"userName"`
	UserPassword string `yaml:"-"`

	CORSAllowedOrigins string `yaml:"corsAllowedOrigins"`

	Platforms PlatformConfig `yaml:"platforms"`
}

// PlatformConfig holds external form platform settings
type PlatformConfig struct {
	TypeformToken      string `yaml:"-"`
	TypeformBaseURL    string `yaml:"typeformBaseUrl"`
	SurveyMonkeyToken  string `yaml:"-"`
	SurveyMonkeyURL    string `yaml:"surveyMonkeyBaseUrl"`
	TimeoutSeconds     int    `yaml:"timeoutSeconds"`
	MaxRetries         int    `yaml:"maxRetries"`
	GoogleSheetDefault bool   `yaml:"googleSheetDefault"`
}

// Load reads .env (if present), the environment, then an optional YAML
// overlay named by CONFIG_FILE.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "formsmith"),
		RedisAddr:          strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		LogMode:            getEnv("LOG_MODE", "dev"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		UserName:           getEnv("FORMSMITH_USERNAME", "admin"),
		UserPassword:       getEnv("FORMSMITH_PASSWORD", "password123"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		Platforms: PlatformConfig{
			TypeformToken:      os.Getenv("TYPEFORM_ACCESS_TOKEN"),
			TypeformBaseURL:    getEnv("TYPEFORM_BASE_URL", "https://api.typeform.com"),
			SurveyMonkeyToken:  os.Getenv("SURVEYMONKEY_ACCESS_TOKEN"),
			SurveyMonkeyURL:    getEnv("SURVEYMONKEY_BASE_URL", "https://api.surveymonkey.com/v3"),
			TimeoutSeconds:     getEnvInt("PLATFORM_TIMEOUT_SECONDS", 30),
			MaxRetries:         getEnvInt("PLATFORM_MAX_RETRIES", 0),
			GoogleSheetDefault: getEnvBool("GOOGLE_CREATE_SPREADSHEET", false),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// overlayFile replaces settings with the non-empty values found in a YAML file
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.HTTPPort, file.HTTPPort)
	setString(&c.MongoURI, file.MongoURI)
	setString(&c.MongoDB, file.MongoDB)
	setString(&c.RedisAddr, strings.TrimPrefix(file.RedisAddr, "redis://"))
	setString(&c.LogMode, file.LogMode)
	setString(&c.UserName, file.UserName)
	setString(&c.CORSAllowedOrigins, file.CORSAllowedOrigins)
	setString(&c.Platforms.TypeformBaseURL, file.Platforms.TypeformBaseURL)
	setString(&c.Platforms.SurveyMonkeyURL, file.Platforms.SurveyMonkeyURL)
	if file.Platforms.TimeoutSeconds > 0 {
		c.Platforms.TimeoutSeconds = file.Platforms.TimeoutSeconds
	}
	if file.Platforms.MaxRetries > 0 {
		c.Platforms.MaxRetries = file.Platforms.MaxRetries
	}
	if file.Platforms.GoogleSheetDefault {
		c.Platforms.GoogleSheetDefault = true
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
