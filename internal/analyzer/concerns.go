package analyzer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxConcerns       = 10
	maxKeyPhrases     = 5
	dedupPrefixLen    = 100
	keyPhraseMinLen   = 20
	keyPhraseMaxLen   = 200
	topConcernsScan   = 5
	maxReasonKeywords = 8
)

// identifyConcerns scans the concern, issue, and escalation keyword groups
// and returns up to maxConcerns cleaned matches ordered by severity.
func (a *Analyzer) identifyConcerns(fullText string) []Concern {
	sentences := splitSentences(fullText)

	groups := []struct {
		name  string
		terms []string
	}{
		{"concern", a.keywords.Concern},
		{"issue", a.keywords.Issue},
		{"escalation", a.keywords.Escalation},
	}

	var candidates []Concern
	for _, group := range groups {
		severity := a.keywords.severityFor(group.name)
		for _, keyword := range group.terms {
			if !strings.Contains(fullText, keyword) {
				continue
			}
			for _, sentence := range sentences {
				if !strings.Contains(sentence, keyword) {
					continue
				}
				context := CleanVTT(strings.TrimSpace(sentence))
				if context == "" {
					continue
				}
				candidates = append(candidates, Concern{
					Type:     group.name,
					Keyword:  keyword,
					Context:  context,
					Severity: severity,
				})
			}
		}
	}

	// Dedup in discovery order before ranking so the first matching group
	// wins for a shared sentence.
	seen := make(map[string]bool, len(candidates))
	unique := make([]Concern, 0, len(candidates))
	for _, c := range candidates {
		key := c.Context
		if len(key) > dedupPrefixLen {
			key = key[:dedupPrefixLen]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Severity > unique[j].Severity
	})

	if len(unique) > maxConcerns {
		unique = unique[:maxConcerns]
	}
	return unique
}

// categorizeConcerns assigns each concern to at most one category. A concern
// matches a category when a category term is a substring of its keyword or
// appears anywhere in the full text; categories are checked in fixed order
// and the first match wins.
func (a *Analyzer) categorizeConcerns(concerns []Concern, fullText string) map[string]int {
	counts := make(map[string]int)
	for _, concern := range concerns {
		for _, category := range a.keywords.Categories {
			matched := false
			for _, term := range category.Terms {
				if strings.Contains(concern.Keyword, term) || strings.Contains(fullText, term) {
					matched = true
					break
				}
			}
			if matched {
				counts[category.Name]++
				break
			}
		}
	}
	return counts
}

// extractKeyPhrases returns up to maxKeyPhrases sentences mentioning any of
// the top-severity concern keywords, in text order.
func (a *Analyzer) extractKeyPhrases(fullText string, concerns []Concern) []string {
	top := concerns
	if len(top) > topConcernsScan {
		top = top[:topConcernsScan]
	}

	phrases := []string{}
	for _, sentence := range splitSentences(fullText) {
		mentioned := false
		for _, concern := range top {
			if strings.Contains(sentence, concern.Keyword) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			continue
		}
		cleaned := capRunes(strings.TrimSpace(sentence), keyPhraseMaxLen)
		if utf8.RuneCountInString(cleaned) > keyPhraseMinLen {
			phrases = append(phrases, cleaned)
		}
		if len(phrases) == maxKeyPhrases {
			break
		}
	}
	return phrases
}
