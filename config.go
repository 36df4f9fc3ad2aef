package apilytics

import "github.com/ilyakaznacheev/cleanenv"

// DefaultEndpoint is the collector URL records are posted to unless a
// sender is constructed with WithEndpoint.
const DefaultEndpoint = "https://www.apilytics.io/api/v1/middleware"

// Config carries the library's environment-driven settings. The core
// itself takes plain arguments; Config exists so adapters and host
// applications can pull the API key from the environment in one call.
//
// An empty APIKey is valid and disables telemetry entirely, which is the
// intended setup for development and test environments.
type Config struct {
	APIKey string `env:"APILYTICS_API_KEY"`
	URL    string `env:"APILYTICS_URL"`
}

// ConfigFromEnv reads configuration from environment variables and fills
// in the default collector endpoint when APILYTICS_URL is unset.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.URL == "" {
		cfg.URL = DefaultEndpoint
	}
	return cfg, nil
}
