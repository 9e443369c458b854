// pkg/config/openai.go
package config

import "time"

type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func loadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      getEnv("OPENAI_API_KEY", ""),
		Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 150),
		Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
		Timeout:     getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
	}
}
