package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AssemblyAIKey      string
	AssemblyAIBaseURL  string
	OpenAIKey          string
	ElevenLabsKey      string
	ElevenLabsBaseURL  string
	DeliverableDir     string
	DeliverableBaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AssemblyAIKey:      os.Getenv("ASSEMBLYAI_API_KEY"),
		AssemblyAIBaseURL:  getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com/v2"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ElevenLabsKey:      os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsBaseURL:  getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1"),
		DeliverableDir:     getEnv("DELIVERABLE_DIR", "./deliverables"),
		DeliverableBaseURL: getEnv("DELIVERABLE_BASE_URL", "/deliverables"),
	}

	// Validate provider credentials up front so a pipeline run never
	// starts with a key missing.
	if cfg.AssemblyAIKey == "" {
		return nil, fmt.Errorf("ASSEMBLYAI_API_KEY is required. Set it as an environment variable or in .env")
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Set it as an environment variable or in .env")
	}
	if cfg.ElevenLabsKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY is required. Set it as an environment variable or in .env")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
