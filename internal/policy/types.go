package policy

// Rule names one individually checkable policy condition.
type Rule string

const (
	RuleLength    Rule = "length"
	RuleUppercase Rule = "uppercase"
	RuleLowercase Rule = "lowercase"
	RuleNumbers   Rule = "numbers"
	RuleSpecial   Rule = "special"
)

// Rules lists every rule in display order.
var Rules = []Rule{RuleLength, RuleUppercase, RuleLowercase, RuleNumbers, RuleSpecial}

// Tier is the qualitative strength label derived from the score.
type Tier string

const (
	TierWeak   Tier = "weak"
	TierFair   Tier = "fair"
	TierGood   Tier = "good"
	TierStrong Tier = "strong"
)

// Label returns the display form of the tier.
func (t Tier) Label() string {
	switch t {
	case TierWeak:
		return "Weak"
	case TierFair:
		return "Fair"
	case TierGood:
		return "Good"
	case TierStrong:
		return "Strong"
	default:
		return string(t)
	}
}

// MaxScore is the upper bound of the strength score.
const MaxScore = 8

// RuleResult maps each rule to pass/fail. Disabled rules always pass.
type RuleResult map[Rule]bool

// Result is the outcome of evaluating one password.
type Result struct {
	Rules  RuleResult `json:"rules"`
	Valid  bool       `json:"is_valid"`
	Score  int        `json:"strength_score"`
	Tier   Tier       `json:"strength_tier"`
	Length int        `json:"length"`
}

// Percentage returns the score normalized to [0,100].
func (r Result) Percentage() float64 {
	return Percentage(r.Score)
}

// Requirement is one line of the human-readable requirement list.
type Requirement struct {
	Rule        Rule   `json:"rule"`
	Description string `json:"description"`
}
