package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ranking   RankingConfig
	Lock      LockConfig
	Telemetry TelemetryConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	ConsumerLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type RankingConfig struct {
	TopN            int
	FinalizedTopic  string // in-process topic for top list snapshots
	DefaultLanguage string // "en" or "ru"
	PublishToNats   bool
}

type LockConfig struct {
	Backend    string // "memory" or "redis"
	TTLSeconds int
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
	SampleRatio float64
}

type APIKeys struct {
	JwtSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ConsumerLogPath:    getEnv("CONSUMER_LOG_FILE_PATH", "logs/ranking_consumer.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ranking: RankingConfig{
			TopN:            getEnvAsInt("RANKING_TOP_N", 50),
			FinalizedTopic:  getEnv("RANKING_FINALIZED_TOPIC_NAME", "RANKING_FINALIZED"),
			DefaultLanguage: getEnv("RANKING_DEFAULT_LANGUAGE", "en"),
			PublishToNats:   getEnvAsBool("RANKING_PUBLISH_EVENTS", true),
		},
		Lock: LockConfig{
			Backend:    getEnv("SESSION_LOCK_BACKEND", "memory"),
			TTLSeconds: getEnvAsInt("SESSION_LOCK_TTL_SECONDS", 30),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "boardgame-ranking-backend"),
			Environment: getEnv("GO_ENV", "development"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
		Keys: APIKeys{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
