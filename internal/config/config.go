// Package config reads kith's environment configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything kith takes from the environment. The store
// path is the one required setting; its absence is reported before any
// store access is attempted.
type Config struct {
	// StorePath is the contact store file, from CONTACTS.
	StorePath string `env:"CONTACTS"`

	// SuggestFraction is the per-contact probability that a current
	// contact is surfaced as a random check-in suggestion.
	SuggestFraction float64 `env:"KITH_SUGGEST_FRACTION" envDefault:"0.01"`

	// NoColor disables ANSI styling in printed views.
	NoColor bool `env:"KITH_NO_COLOR" envDefault:"false"`
}

// Error represents a configuration failure.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// ErrorCode categorizes configuration errors.
type ErrorCode string

const (
	// ErrCodeMissingPath indicates CONTACTS is unset or empty.
	ErrCodeMissingPath ErrorCode = "CONFIG_MISSING_PATH"

	// ErrCodeInvalid indicates an environment value failed to parse.
	ErrCodeInvalid ErrorCode = "CONFIG_INVALID"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load parses the environment, after loading an optional .env file from
// the working directory.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Message: "failed to parse environment", Err: err}
	}
	if cfg.StorePath == "" {
		return nil, &Error{
			Code:    ErrCodeMissingPath,
			Message: "CONTACTS environment variable must point at the contact store file",
		}
	}
	if cfg.SuggestFraction < 0 || cfg.SuggestFraction > 1 {
		return nil, &Error{
			Code:    ErrCodeInvalid,
			Message: fmt.Sprintf("KITH_SUGGEST_FRACTION must be in [0, 1], got %v", cfg.SuggestFraction),
		}
	}
	return cfg, nil
}
