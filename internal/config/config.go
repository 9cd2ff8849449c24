package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SimilarityLogPath  string
	CorsAllowedOrigins string
	NatsURL            string
	MaxUploadBytes     int
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	MasterBucket string
}

type AIConfig struct {
	EmbeddingProvider string // "openai" or "ollama"
	LLMProvider       string // "openai" or "ollama"
	OpenAIAPIKey      string
	EmbeddingModel    string
	LLMModel          string
	OllamaBaseURL     string
	UpstreamTimeout   time.Duration
}

type RetrievalConfig struct {
	TopK             int
	ChunkSize        int
	ChunkOverlap     int
	IndexTopicName   string
	DefaultThreshold float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SimilarityLogPath:  getEnv("SIMILARITY_LOG_PATH", "logs/similarity.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Endpoint:     getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
			UseSSL:       getEnvAsBool("S3_USE_SSL", false),
			MasterBucket: getEnv("S3_MASTER_BUCKET", "doc-manager-master"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			UpstreamTimeout:   getEnvAsDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		},
		Retrieval: RetrievalConfig{
			TopK:             getEnvAsInt("RETRIEVAL_TOP_K", 5),
			ChunkSize:        getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:     getEnvAsInt("CHUNK_OVERLAP", 100),
			IndexTopicName:   getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT_CONTENT"),
			DefaultThreshold: getEnvAsFloat("DEFAULT_SIMILARITY_THRESHOLD", 0.7),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
