package policy

import "fmt"

// Requirements returns the requirement list shown to users. Length is always
// listed; character classes only when cfg requires them.
func Requirements(cfg Config) []Requirement {
	reqs := []Requirement{
		{Rule: RuleLength, Description: fmt.Sprintf("At least %d characters", cfg.MinLength)},
	}
	if cfg.RequireUppercase {
		reqs = append(reqs, Requirement{Rule: RuleUppercase, Description: "One uppercase letter (A-Z)"})
	}
	if cfg.RequireLowercase {
		reqs = append(reqs, Requirement{Rule: RuleLowercase, Description: "One lowercase letter (a-z)"})
	}
	if cfg.RequireNumbers {
		reqs = append(reqs, Requirement{Rule: RuleNumbers, Description: "One number (0-9)"})
	}
	if cfg.RequireSpecialChars {
		reqs = append(reqs, Requirement{Rule: RuleSpecial, Description: "One special character (!@#$% etc.)"})
	}
	return reqs
}
