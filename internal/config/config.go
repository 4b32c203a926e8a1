package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Retrieval  RetrievalConfig
	Generation GenerationConfig
	Ai         AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

// RetrievalConfig tunes how reference outlines are fetched and ranked before
// generation. Weights should sum to at most 1.0.
type RetrievalConfig struct {
	SimilarityWeight    float64
	RecencyWeight       float64
	CategoryMatchWeight float64
	BaseScore           float64
	SimilarityThreshold float64
	MaxResults          int
	CacheTTLSeconds     int
}

type GenerationConfig struct {
	CallTimeoutSeconds int
	DurationTolerance  int
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai" or "deepseek"
	LLMModel          string // e.g. "llama3", "gpt-4o-mini", "deepseek-chat"
	LLMBaseURL        string
	GoogleGeminiKey   string
	OpenAiKey         string
	JinaKey           string
	EmbedTopicName    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Retrieval: RetrievalConfig{
			SimilarityWeight:    getEnvAsFloat("RETRIEVAL_SIMILARITY_WEIGHT", 0.5),
			RecencyWeight:       getEnvAsFloat("RETRIEVAL_RECENCY_WEIGHT", 0.2),
			CategoryMatchWeight: getEnvAsFloat("RETRIEVAL_CATEGORY_WEIGHT", 0.2),
			BaseScore:           getEnvAsFloat("RETRIEVAL_BASE_SCORE", 0.1),
			SimilarityThreshold: getEnvAsFloat("RETRIEVAL_SIMILARITY_THRESHOLD", 0.65),
			MaxResults:          getEnvAsInt("RETRIEVAL_MAX_RESULTS", 5),
			CacheTTLSeconds:     getEnvAsInt("RETRIEVAL_CACHE_TTL_SECONDS", 300),
		},
		Generation: GenerationConfig{
			CallTimeoutSeconds: getEnvAsInt("GENERATION_CALL_TIMEOUT_SECONDS", 45),
			DurationTolerance:  getEnvAsInt("GENERATION_DURATION_TOLERANCE", 5),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAiKey:         getEnv("OPENAI_API_KEY", ""),
			JinaKey:           getEnv("JINA_API_KEY", ""),
			EmbedTopicName:    getEnv("EMBED_SESSION_OUTLINE_TOPIC_NAME", "EMBED_SESSION_OUTLINE"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
