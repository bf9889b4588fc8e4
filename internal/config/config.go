package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Backend BackendConfig
	Ai      AIConfig
	Chat    ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CleanupLogFilePath string
	CorsAllowedOrigins string
	JwtSecret          string
	NatsURL            string
	RedisURL           string
}

type APIKeys struct {
	GoogleGemini string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AIConfig struct {
	Model                 string // e.g. "gemini-2.5-flash"
	GeminiBaseURL         string
	UploadPollInterval    time.Duration
	UploadPollMaxAttempts int // 0 disables the bound
	ExampleQuestionsTTL   time.Duration
}

type ChatConfig struct {
	RecentSessionsLimit int
	MessageFetchWorkers int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CleanupLogFilePath: getEnv("CLEANUP_LOG_FILE_PATH", "logs/cleanup.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second),
		},
		Ai: AIConfig{
			Model:                 getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL:         getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			UploadPollInterval:    getEnvAsDuration("UPLOAD_POLL_INTERVAL", 3*time.Second),
			UploadPollMaxAttempts: getEnvAsInt("UPLOAD_POLL_MAX_ATTEMPTS", 100),
			ExampleQuestionsTTL:   getEnvAsDuration("EXAMPLE_QUESTIONS_TTL", time.Hour),
		},
		Chat: ChatConfig{
			RecentSessionsLimit: getEnvAsInt("RECENT_SESSIONS_LIMIT", 10),
			MessageFetchWorkers: getEnvAsInt("MESSAGE_FETCH_WORKERS", 5),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("3s", "1h") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
