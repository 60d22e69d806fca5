package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             int
	LogLevel         string
	GroqAPIKey       string
	GroqBaseURL      string
	GroqModel        string
	EmbedBaseURL     string
	EmbedAPIKey      string
	EmbedModel       string
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	TopK             int
	MemoryLimit      int
	MaxAnswerTokens  int
	RetrieveTimeout  time.Duration
	ModelTimeout     time.Duration
	DatabaseURL      string
	NatsURL          string
	NatsToken        string
}

func Load() Config {
	return Config{
		Port:             envInt("POLICYPULSE_PORT", 8760),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		GroqAPIKey:       envStr("GROQ_API_KEY", ""),
		GroqBaseURL:      envStr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:        envStr("GROQ_MODEL", "llama-3.1-8b-instant"),
		EmbedBaseURL:     envStr("EMBED_BASE_URL", "https://api.openai.com/v1"),
		EmbedAPIKey:      envStr("EMBED_API_KEY", ""),
		EmbedModel:       envStr("EMBED_MODEL", "text-embedding-3-small"),
		QdrantURL:        envStr("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     envStr("QDRANT_API_KEY", ""),
		QdrantCollection: envStr("QDRANT_COLLECTION", "policypulse_policies"),
		TopK:             envInt("RETRIEVE_TOP_K", 4),
		MemoryLimit:      envInt("MEMORY_LIMIT", 10),
		MaxAnswerTokens:  envInt("MAX_ANSWER_TOKENS", 500),
		RetrieveTimeout:  envDur("RETRIEVE_TIMEOUT_SECS", 15*time.Second),
		ModelTimeout:     envDur("MODEL_TIMEOUT_SECS", 60*time.Second),
		DatabaseURL:      envStr("DATABASE_URL", ""),
		NatsURL:          envStr("NATS_URL", ""),
		NatsToken:        envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
