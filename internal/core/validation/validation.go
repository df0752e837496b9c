package validation

// Rule is a named predicate over a candidate record. Valid reports
// whether the rule passes; Message is surfaced to the client when it
// does not.
type Rule struct {
	Field   string
	Message string
	Valid   func() bool
}

// Runner accumulates rules and evaluates every one of them, so a
// single request reports all of its violations, not just the first.
type Runner struct {
	rules []Rule
}

func New() *Runner {
	return &Runner{rules: make([]Rule, 0, 4)}
}

func (r *Runner) Rule(field, message string, valid func() bool) *Runner {
	r.rules = append(r.rules, Rule{Field: field, Message: message, Valid: valid})
	return r
}

// Run evaluates all rules in declaration order and returns the
// messages of the failing ones. An empty result means the candidate
// is valid.
func (r *Runner) Run() []string {
	var violations []string
	for _, rule := range r.rules {
		if !rule.Valid() {
			violations = append(violations, rule.Message)
		}
	}
	return violations
}
