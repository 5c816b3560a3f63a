package commands

import (
	"github.com/MEKXH/passgauge/internal/config"
	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/spf13/cobra"
)

func addPolicyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("min-length", policy.DefaultMinLength, "Minimum password length")
	f.Bool("require-uppercase", true, "Require an uppercase letter (A-Z)")
	f.Bool("require-lowercase", true, "Require a lowercase letter (a-z)")
	f.Bool("require-numbers", true, "Require a digit (0-9)")
	f.Bool("require-special", false, "Require a special character")
	f.String("special-chars", policy.DefaultSpecialChars, "Characters that count as special, matched literally")
}

// applyPolicyFlags overrides base with every flag the user actually set and
// revalidates the result.
func applyPolicyFlags(cmd *cobra.Command, base policy.Config) (policy.Config, error) {
	f := cmd.Flags()
	var opts []policy.Option

	if f.Changed("min-length") {
		n, _ := f.GetInt("min-length")
		opts = append(opts, policy.WithMinLength(n))
	}
	if f.Changed("require-uppercase") {
		v, _ := f.GetBool("require-uppercase")
		opts = append(opts, policy.WithUppercase(v))
	}
	if f.Changed("require-lowercase") {
		v, _ := f.GetBool("require-lowercase")
		opts = append(opts, policy.WithLowercase(v))
	}
	if f.Changed("require-numbers") {
		v, _ := f.GetBool("require-numbers")
		opts = append(opts, policy.WithNumbers(v))
	}
	if f.Changed("require-special") {
		v, _ := f.GetBool("require-special")
		opts = append(opts, policy.WithSpecialChars(v))
	}
	if f.Changed("special-chars") {
		s, _ := f.GetString("special-chars")
		opts = append(opts, policy.WithSpecialCharSet(s))
	}

	cfg := base
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return policy.Config{}, err
	}
	return cfg, nil
}

// resolvePolicy loads config and builds the evaluator from its policy
// section plus any flag overrides.
func resolvePolicy(cmd *cobra.Command) (*config.Config, policy.Evaluator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, policy.Evaluator{}, err
	}
	p, err := applyPolicyFlags(cmd, cfg.PolicyConfig())
	if err != nil {
		return nil, policy.Evaluator{}, err
	}
	ev, err := policy.NewEvaluator(p)
	if err != nil {
		return nil, policy.Evaluator{}, err
	}
	return cfg, ev, nil
}
