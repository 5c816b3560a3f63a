package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config root configuration
type Config struct {
	Policy  PolicyConfig  `mapstructure:"policy" json:"policy"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Gateway GatewayConfig `mapstructure:"gateway" json:"gateway"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`
}

// PolicyConfig password policy settings
type PolicyConfig struct {
	MinLength           int    `mapstructure:"min_length" json:"min_length" validate:"min=1"`
	RequireUppercase    bool   `mapstructure:"require_uppercase" json:"require_uppercase"`
	RequireLowercase    bool   `mapstructure:"require_lowercase" json:"require_lowercase"`
	RequireNumbers      bool   `mapstructure:"require_numbers" json:"require_numbers"`
	RequireSpecialChars bool   `mapstructure:"require_special_chars" json:"require_special_chars"`
	SpecialChars        string `mapstructure:"special_chars" json:"special_chars"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `mapstructure:"file" json:"file"`
}

// GatewayConfig feedback server settings
type GatewayConfig struct {
	Host      string  `mapstructure:"host" json:"host"`
	Port      int     `mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	Token     string  `mapstructure:"token" json:"token"`
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" validate:"gte=0"`
	Burst     int     `mapstructure:"burst" json:"burst" validate:"gte=0"`
}

// UIConfig terminal rendering settings
type UIConfig struct {
	ShowRequirements bool `mapstructure:"show_requirements" json:"show_requirements"`
	BarWidth         int  `mapstructure:"bar_width" json:"bar_width" validate:"gte=0,lte=200"`
}

const (
	defaultGatewayPort = 18791
	defaultRateLimit   = 5
	defaultBurst       = 10
	defaultBarWidth    = 30
)

// DefaultConfig returns config with sensible defaults
func DefaultConfig() *Config {
	p := policy.DefaultConfig()
	return &Config{
		Policy: PolicyConfig{
			MinLength:           p.MinLength,
			RequireUppercase:    p.RequireUppercase,
			RequireLowercase:    p.RequireLowercase,
			RequireNumbers:      p.RequireNumbers,
			RequireSpecialChars: p.RequireSpecialChars,
			SpecialChars:        p.SpecialChars,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Gateway: GatewayConfig{
			Host:      "127.0.0.1",
			Port:      defaultGatewayPort,
			Token:     "",
			RateLimit: defaultRateLimit,
			Burst:     defaultBurst,
		},
		UI: UIConfig{
			ShowRequirements: true,
			BarWidth:         defaultBarWidth,
		},
	}
}

// ConfigDir returns the passgauge config directory
func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("failed to resolve home directory, using current directory as fallback", "error", err)
		homeDir = "."
	}
	return filepath.Join(homeDir, ".passgauge")
}

// ConfigPath returns the default config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from the default path or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads config from path. A missing file is created with defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, cfg); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("PASSGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.WeaklyTypedInput = true
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to the default path
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo saves config to path
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

var validate = validator.New()

// Validate checks that the configuration values are within acceptable ranges
// and fills zero values that have defaults. gateway.rate_limit is left as is:
// keys absent from the file already carry DefaultConfig values, and an
// explicit 0 disables rate limiting.
func (c *Config) Validate() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		level = "info"
	}
	c.Log.Level = level

	if err := validate.Struct(c); err != nil {
		return describeValidationError(err)
	}

	if err := c.PolicyConfig().Validate(); err != nil {
		return err
	}

	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}

	if strings.TrimSpace(c.Gateway.Host) == "" {
		c.Gateway.Host = "127.0.0.1"
	}
	if c.Gateway.Burst == 0 {
		c.Gateway.Burst = defaultBurst
	}
	if c.UI.BarWidth == 0 {
		c.UI.BarWidth = defaultBarWidth
	}

	return nil
}

// PolicyConfig maps the policy section onto the evaluator's config.
func (c *Config) PolicyConfig() policy.Config {
	return policy.Config{
		MinLength:           c.Policy.MinLength,
		RequireUppercase:    c.Policy.RequireUppercase,
		RequireLowercase:    c.Policy.RequireLowercase,
		RequireNumbers:      c.Policy.RequireNumbers,
		RequireSpecialChars: c.Policy.RequireSpecialChars,
		SpecialChars:        c.Policy.SpecialChars,
	}
}

// SetPolicy stores p in the policy section.
func (c *Config) SetPolicy(p policy.Config) {
	c.Policy = PolicyConfig{
		MinLength:           p.MinLength,
		RequireUppercase:    p.RequireUppercase,
		RequireLowercase:    p.RequireLowercase,
		RequireNumbers:      p.RequireNumbers,
		RequireSpecialChars: p.RequireSpecialChars,
		SpecialChars:        p.SpecialChars,
	}
}

var fieldKeys = map[string]string{
	"Config.Policy.MinLength":  "policy.min_length",
	"Config.Log.Level":         "log.level",
	"Config.Gateway.Port":      "gateway.port",
	"Config.Gateway.RateLimit": "gateway.rate_limit",
	"Config.Gateway.Burst":     "gateway.burst",
	"Config.UI.BarWidth":       "ui.bar_width",
}

func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	key, ok := fieldKeys[fe.Namespace()]
	if !ok {
		key = fe.Namespace()
	}
	switch fe.Tag() {
	case "min", "gte":
		if fe.Field() == "MinLength" {
			return fmt.Errorf("%w: %s must be >= %s, got %v", policy.ErrInvalidConfiguration, key, fe.Param(), fe.Value())
		}
		return fmt.Errorf("%s must be >= %s, got %v", key, fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Errorf("%s must be <= %s, got %v", key, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of %s; got %q", key, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Errorf("%s failed %q validation", key, fe.Tag())
	}
}
