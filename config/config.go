// Package config loads the process-wide settings from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/errors/v5"
	"github.com/go-playground/validator/v10"
)

// Config is constructed once at process start and never mutated afterwards.
type Config struct {
	// APIKey is the Steam Web API key. It is optional at load time so that a
	// missing key surfaces per request instead of preventing start up.
	APIKey string `env:"STEAM_API_KEY"`

	// BaseURL is the externally visible address of this service. It is used as
	// the OpenID realm and return_to target.
	BaseURL string `env:"FUNCTION_URL" envDefault:"http://localhost" validate:"required,url"`

	APIBaseURL      string        `env:"STEAM_API_URL"          envDefault:"http://api.steampowered.com"            validate:"required,url"`
	LoginEndpoint   string        `env:"STEAM_OPENID_URL"       envDefault:"https://steamcommunity.com/openid/login" validate:"required,url"`
	APITimeout      time.Duration `env:"STEAM_API_TIMEOUT"      envDefault:"5s"                                      validate:"gt=0"`
	VerifyAssertion bool          `env:"STEAM_VERIFY_ASSERTION" envDefault:"false"`
	ListenAddr      string        `env:"LISTEN_ADDR"            envDefault:":8080"                                   validate:"required"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions is Load with caller supplied env.Options, e.g. a fixed Environment map.
func LoadWithOptions(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Wrap(err, "env.ParseWithOptions()")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the invariants Load enforces
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "validator.Validate.Struct()")
	}

	return nil
}
