package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// AssetsDir holds the difficulty and prompt text assets. A missing file
	// under it degrades to empty text, so the directory itself carries no
	// existence requirement.
	AssetsDir string `env:"ASSETS_DIR" envDefault:"assets"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
