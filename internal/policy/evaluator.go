package policy

import "unicode/utf8"

// Evaluator performs pure password checks against one validated Config.
type Evaluator struct {
	cfg     Config
	special map[rune]struct{}
}

// NewEvaluator validates cfg and builds a deterministic, side-effect free evaluator.
func NewEvaluator(cfg Config) (Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return Evaluator{}, err
	}
	return newEvaluator(cfg), nil
}

func newEvaluator(cfg Config) Evaluator {
	special := make(map[rune]struct{}, len(cfg.SpecialChars))
	for _, r := range cfg.SpecialChars {
		special[r] = struct{}{}
	}
	return Evaluator{cfg: cfg, special: special}
}

// Config returns the policy the evaluator checks against.
func (e Evaluator) Config() Config {
	return e.cfg
}

// Evaluate returns rule results, validity, score and tier for password.
func (e Evaluator) Evaluate(password string) Result {
	c := e.scan(password)
	rules, valid := e.rules(c)
	score := e.score(c)
	return Result{
		Rules:  rules,
		Valid:  valid,
		Score:  score,
		Tier:   TierFor(score),
		Length: c.length,
	}
}

// CheckRequirements reports per-rule results and whether all of them pass.
func (e Evaluator) CheckRequirements(password string) (RuleResult, bool) {
	return e.rules(e.scan(password))
}

// CalculateStrength returns the strength score in [0, MaxScore].
func (e Evaluator) CalculateStrength(password string) int {
	return e.score(e.scan(password))
}

// Requirements lists the rules the policy enforces.
func (e Evaluator) Requirements() []Requirement {
	return Requirements(e.cfg)
}

// Evaluate checks password against cfg without holding an Evaluator.
// cfg is not validated; an unsatisfiable cfg still yields a deterministic result.
func Evaluate(password string, cfg Config) Result {
	return newEvaluator(cfg).Evaluate(password)
}

// CheckRequirements is the Config-taking form of Evaluator.CheckRequirements.
func CheckRequirements(password string, cfg Config) (RuleResult, bool) {
	return newEvaluator(cfg).CheckRequirements(password)
}

// CalculateStrength is the Config-taking form of Evaluator.CalculateStrength.
func CalculateStrength(password string, cfg Config) int {
	return newEvaluator(cfg).CalculateStrength(password)
}

// TierFor maps a score onto its tier using score/MaxScore as a percentage.
func TierFor(score int) Tier {
	pct := Percentage(score)
	switch {
	case pct < 25:
		return TierWeak
	case pct < 50:
		return TierFair
	case pct < 75:
		return TierGood
	default:
		return TierStrong
	}
}

// Percentage normalizes score to [0,100], clamping out-of-range scores.
func Percentage(score int) float64 {
	return float64(clampScore(score)) / MaxScore * 100
}

// composition is what a single pass over the password learns.
type composition struct {
	length  int
	upper   bool
	lower   bool
	digit   bool
	special bool
}

func (e Evaluator) scan(password string) composition {
	c := composition{length: utf8.RuneCountInString(password)}
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		}
		// Letters and digits may also be listed as special.
		if _, ok := e.special[r]; ok {
			c.special = true
		}
	}
	return c
}

func (e Evaluator) rules(c composition) (RuleResult, bool) {
	rules := RuleResult{
		RuleLength:    c.length >= e.cfg.MinLength,
		RuleUppercase: !e.cfg.RequireUppercase || c.upper,
		RuleLowercase: !e.cfg.RequireLowercase || c.lower,
		RuleNumbers:   !e.cfg.RequireNumbers || c.digit,
		RuleSpecial:   !e.cfg.RequireSpecialChars || c.special,
	}
	valid := true
	for _, ok := range rules {
		valid = valid && ok
	}
	return rules, valid
}

func (e Evaluator) score(c composition) int {
	score := 0
	if c.length >= e.cfg.MinLength {
		score++
	}
	// Written as a subtraction so a huge MinLength cannot wrap.
	if c.length-4 >= e.cfg.MinLength {
		score++
	}
	if c.upper {
		score++
	}
	if c.lower {
		score++
	}
	if c.digit {
		score++
	}
	// Special characters only earn a point when the policy asks for them.
	if e.cfg.RequireSpecialChars && c.special {
		score++
	}
	if c.length >= 12 {
		score++
	}
	if c.length >= 16 {
		score++
	}
	return clampScore(score)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
