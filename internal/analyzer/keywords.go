package analyzer

// Category pairs a concern category with the terms that signal it. Categories
// are matched in slice order and the first match wins.
type Category struct {
	Name  string
	Terms []string
}

// Keywords holds the keyword tables driving the analysis. All terms are
// lowercase and matched as substrings of the lowercased transcript text.
type Keywords struct {
	Positive   []string
	Negative   []string
	Concern    []string
	Issue      []string
	Escalation []string
	Urgency    []string
	Categories []Category
	Severity   map[string]int
}

// DefaultKeywords returns the production keyword tables. Tests may build
// smaller fixtures instead; the scoring logic never inspects the tables
// beyond membership.
func DefaultKeywords() Keywords {
	return Keywords{
		Positive: []string{
			"excellent", "great", "good", "perfect", "amazing", "wonderful",
			"satisfied", "happy", "pleased", "impressed", "love", "appreciate",
			"thank you", "thanks", "grateful", "helpful", "useful", "valuable",
			"exactly what", "meets expectations", "exceeded", "beyond",
			"recommend", "would use again", "definitely", "absolutely",
		},
		Negative: []string{
			"disappointed", "frustrated", "unhappy", "unsatisfied", "poor",
			"terrible", "awful", "bad", "worst", "hate", "dislike",
			"not working", "broken", "issue", "problem", "concern", "worry",
			"not good enough", "doesn't meet", "below expectations",
			"waste of time", "not helpful", "useless", "ineffective",
		},
		Concern: []string{
			"concern", "worried", "worry", "anxious", "nervous", "uncertain",
			"not sure", "question", "doubt", "hesitant", "apprehensive",
			"risk", "risky", "uncertainty", "unclear", "confused", "confusion",
		},
		Issue: []string{
			"bug", "error", "broken", "not working", "failed", "failure",
			"problem", "issue", "glitch", "malfunction", "defect", "flaw",
			"slow", "lag", "timeout", "crash", "down", "outage",
		},
		Escalation: []string{
			"escalate", "manager", "supervisor", "complaint", "complain",
			"refund", "cancel", "terminate", "switch", "competitor",
			"legal", "lawyer", "sue", "lawsuit", "breach", "violation",
		},
		Urgency: []string{
			"urgent", "asap", "immediately", "critical", "important",
			"priority", "emergency", "now", "right away", "soon",
			"deadline", "time sensitive", "cannot wait",
		},
		Categories: []Category{
			{Name: "technical", Terms: []string{"bug", "error", "broken", "not working", "slow", "crash", "glitch", "technical issue"}},
			{Name: "performance", Terms: []string{"slow", "lag", "performance", "speed", "timeout", "bottleneck", "optimization"}},
			{Name: "feature", Terms: []string{"missing", "need", "want", "should have", "would like", "feature request", "enhancement"}},
			{Name: "support", Terms: []string{"support", "help", "assistance", "response time", "waiting", "unresponsive"}},
			{Name: "pricing", Terms: []string{"expensive", "cost", "price", "pricing", "budget", "afford", "value", "worth"}},
			{Name: "reliability", Terms: []string{"unreliable", "inconsistent", "unstable", "downtime", "outage", "unavailable"}},
			{Name: "usability", Terms: []string{"difficult", "complex", "confusing", "hard to use", "user friendly", "intuitive"}},
			{Name: "security", Terms: []string{"security", "privacy", "data", "breach", "safe", "secure", "protection"}},
		},
		Severity: map[string]int{
			"escalation": 5,
			"issue":      4,
			"concern":    3,
			"negative":   2,
		},
	}
}

// severityFor returns the ranking severity for a concern type, defaulting to 2.
func (k Keywords) severityFor(concernType string) int {
	if s, ok := k.Severity[concernType]; ok {
		return s
	}
	return 2
}
