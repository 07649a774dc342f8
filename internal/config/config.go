// README: Config loader with env defaults for HTTP, LLM, Places, and trip settings.
package config

import (
	"os"
	"strconv"
)

type TripConfig struct {
	DefaultBudget    float64
	DefaultDays      int
	DefaultPeople    int
	MaxDialogueTurns int
	// SimilarityThreshold controls when a new preference snippet replaces an
	// existing one instead of being appended.
	SimilarityThreshold float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	LLM struct {
		Provider       string
		BaseURL        string
		Model          string
		EmbedModel     string
		GeminiKey      string
		Temperature    float64
		TimeoutSeconds int
	}
	Places struct {
		APIKey string
	}
	Trip TripConfig
	Log  struct {
		Level string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ATLAS_HTTP_ADDR", ":8080")
	cfg.LLM.Provider = envOrDefault("ATLAS_LLM_PROVIDER", "ollama")
	cfg.LLM.BaseURL = envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	cfg.LLM.Model = envOrDefault("OLLAMA_MODEL", "llama3")
	cfg.LLM.EmbedModel = envOrDefault("OLLAMA_EMBED_MODEL", "nomic-embed-text")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.Temperature = envOrDefaultFloat("ATLAS_LLM_TEMPERATURE", 0.5)
	cfg.LLM.TimeoutSeconds = envOrDefaultInt("ATLAS_LLM_TIMEOUT", 600)
	cfg.Places.APIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.Trip.DefaultBudget = envOrDefaultFloat("ATLAS_DEFAULT_BUDGET", 600)
	cfg.Trip.DefaultDays = envOrDefaultInt("ATLAS_DEFAULT_DAYS", 3)
	cfg.Trip.DefaultPeople = envOrDefaultInt("ATLAS_DEFAULT_PEOPLE", 1)
	cfg.Trip.MaxDialogueTurns = envOrDefaultInt("ATLAS_MAX_DIALOGUE_TURNS", 3)
	cfg.Trip.SimilarityThreshold = envOrDefaultFloat("ATLAS_SIM_THRESHOLD", 0.75)
	cfg.Log.Level = envOrDefault("ATLAS_LOG_LEVEL", "info")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
