package config

import "github.com/caarlos0/env/v11"

// LLMConfig describes the completion service. APIKey and Model are not
// required at parse time: their absence is surfaced as a fatal configuration
// error by the client when a completion is first attempted, so read-only
// endpoints keep working on a box without credentials.
type LLMConfig struct {
	APIKey      string  `env:"LLM_API_KEY"`
	Model       string  `env:"LLM_MODEL" envDefault:"openai/gpt-oss-20b"`
	BaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"1.5"`
}

func LoadLLM() (LLMConfig, error) {
	var cfg LLMConfig
	err := env.Parse(&cfg)
	return cfg, err
}
