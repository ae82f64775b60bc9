package rest

import (
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// Config holds the identity provider endpoint settings.
type Config struct {
	// BaseURL is the root of the POS backend API, e.g. "https://api.pos.example".
	BaseURL string `env:"POS_API_BASE_URL"`

	// Timeout bounds each identity provider call.
	Timeout time.Duration `env:"POS_API_TIMEOUT" envDefault:"10s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"POS_API_USER_AGENT" envDefault:"go-session"`

	HTTPClient *http.Client `env:"-"`
}

// ConfigFromEnv builds a Config from the environment, loading a .env file
// first if one is present.
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse identity provider config")
	}

	if cfg.BaseURL == "" {
		return Config{}, goerrors.New("POS_API_BASE_URL is required", goerrors.CategoryBadInput)
	}

	return cfg, nil
}
