package policy

import (
	"errors"
	"fmt"
)

const (
	DefaultMinLength    = 8
	DefaultSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// ErrInvalidConfiguration is wrapped by every policy configuration error.
var ErrInvalidConfiguration = errors.New("invalid policy configuration")

// Config is the set of rules a password is checked against.
type Config struct {
	MinLength           int
	RequireUppercase    bool
	RequireLowercase    bool
	RequireNumbers      bool
	RequireSpecialChars bool
	SpecialChars        string
}

// DefaultConfig returns the stock policy: 8 characters with upper, lower and
// digit required.
func DefaultConfig() Config {
	return Config{
		MinLength:           DefaultMinLength,
		RequireUppercase:    true,
		RequireLowercase:    true,
		RequireNumbers:      true,
		RequireSpecialChars: false,
		SpecialChars:        DefaultSpecialChars,
	}
}

// Option adjusts a Config built by NewConfig.
type Option func(*Config)

func WithMinLength(n int) Option {
	return func(c *Config) { c.MinLength = n }
}

func WithUppercase(required bool) Option {
	return func(c *Config) { c.RequireUppercase = required }
}

func WithLowercase(required bool) Option {
	return func(c *Config) { c.RequireLowercase = required }
}

func WithNumbers(required bool) Option {
	return func(c *Config) { c.RequireNumbers = required }
}

func WithSpecialChars(required bool) Option {
	return func(c *Config) { c.RequireSpecialChars = required }
}

// WithSpecialCharSet replaces the characters that count as special.
// Every character is matched literally.
func WithSpecialCharSet(set string) Option {
	return func(c *Config) { c.SpecialChars = set }
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that could never be satisfied sensibly.
func (c Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("%w: min_length must be >= 1, got %d", ErrInvalidConfiguration, c.MinLength)
	}
	if c.RequireSpecialChars && c.SpecialChars == "" {
		return fmt.Errorf("%w: special_chars must be non-empty when require_special_chars is set", ErrInvalidConfiguration)
	}
	return nil
}
