package analyzer

import (
	"math"
	"strings"
	"time"

	"pulse-backend/internal/shared/telemetry"
)

// estimatorTextCap bounds how much text is handed to the polarity estimator.
const estimatorTextCap = 5000

// Analyzer derives satisfaction, concern, and risk signals from meeting
// transcripts. It is stateless and safe for concurrent use: every call reads
// only its own input and the immutable keyword tables.
type Analyzer struct {
	keywords  Keywords
	estimator PolarityEstimator
	now       func() time.Time
}

// New builds an Analyzer with the given keyword tables and estimator. A nil
// estimator selects the degraded keyword-ratio path, logged once here rather
// than per call.
func New(keywords Keywords, estimator PolarityEstimator) *Analyzer {
	if estimator == nil {
		telemetry.Info("analyzer.degraded", map[string]any{
			"reason": "no polarity estimator configured; keyword-ratio scoring only",
		})
		estimator = NullEstimator{}
	}
	return &Analyzer{keywords: keywords, estimator: estimator, now: time.Now}
}

// NewDefault builds an Analyzer with production keyword tables and the
// VADER-backed estimator.
func NewDefault() *Analyzer {
	return New(DefaultKeywords(), NewVaderEstimator())
}

// Analyze scores a transcript (plus optional chat text) and returns the full
// analysis record. It is total over its inputs: empty transcript text yields
// the fixed neutral record and no input can make it fail.
func (a *Analyzer) Analyze(transcriptText, chatText string) Result {
	if transcriptText == "" {
		return a.emptyResult()
	}

	fullText := strings.ToLower(transcriptText)
	if chatText != "" {
		fullText += " " + strings.ToLower(chatText)
	}

	satisfaction := a.satisfactionScore(fullText)
	concerns := a.identifyConcerns(fullText)
	categories := a.categorizeConcerns(concerns, fullText)
	sentiment := a.calculateSentiment(fullText)
	phrases := a.extractKeyPhrases(fullText, concerns)
	urgency := a.urgencyLevel(fullText)
	risk := riskScore(satisfaction, len(concerns), urgency)

	return Result{
		SatisfactionScore: satisfaction,
		Sentiment:         sentiment,
		Concerns:          concerns,
		ConcernCategories: categories,
		KeyPhrases:        phrases,
		UrgencyLevel:      urgency,
		RiskScore:         risk,
		AnalyzedAt:        a.now().UTC(),
		TranscriptLength:  len(transcriptText),
		HasChat:           chatText != "",
	}
}

// satisfactionScore maps keyword balance to a 0-100 score. Each keyword
// counts at most once regardless of repetition. With no signal the score is
// a neutral 50. When a real polarity estimate is available it is blended in
// at 30% weight.
func (a *Analyzer) satisfactionScore(fullText string) float64 {
	positive := countPresent(a.keywords.Positive, fullText)
	negative := countPresent(a.keywords.Negative, fullText)

	total := positive + negative
	if total == 0 {
		return 50.0
	}

	score := float64(positive) / float64(total) * 100

	if est, ok := a.estimator.Estimate(capRunes(fullText, estimatorTextCap)); ok {
		adjustment := (est.Polarity + 1) * 50
		score = score*0.7 + adjustment*0.3
	}

	return round2(clamp(score, 0, 100))
}

// urgencyLevel classifies time pressure. Any escalation keyword forces high
// urgency regardless of the urgency-keyword count.
func (a *Analyzer) urgencyLevel(fullText string) string {
	urgencyCount := countPresent(a.keywords.Urgency, fullText)
	escalationCount := countPresent(a.keywords.Escalation, fullText)

	switch {
	case escalationCount > 0 || urgencyCount > 3:
		return UrgencyHigh
	case urgencyCount > 1:
		return UrgencyMedium
	case urgencyCount > 0:
		return UrgencyLow
	default:
		return UrgencyNone
	}
}

// riskScore blends inverse satisfaction, concern volume, and an urgency
// multiplier into a clamped 0-100 score.
func riskScore(satisfaction float64, concernCount int, urgency string) float64 {
	risk := 100 - satisfaction
	risk += float64(concernCount) * 5

	multiplier := 1.0
	switch urgency {
	case UrgencyHigh:
		multiplier = 1.5
	case UrgencyMedium:
		multiplier = 1.2
	case UrgencyLow:
		multiplier = 1.1
	}

	return round2(clamp(risk*multiplier, 0, 100))
}

func (a *Analyzer) emptyResult() Result {
	return Result{
		SatisfactionScore: 50.0,
		Sentiment:         Sentiment{Polarity: 0.0, Subjectivity: 0.5},
		Concerns:          []Concern{},
		ConcernCategories: map[string]int{},
		KeyPhrases:        []string{},
		UrgencyLevel:      UrgencyNone,
		RiskScore:         50.0,
		AnalyzedAt:        a.now().UTC(),
		TranscriptLength:  0,
		HasChat:           false,
	}
}

// countPresent counts how many of the keywords appear in text at least once.
func countPresent(keywords []string, text string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// matchPresent returns the keywords that appear in text, in table order.
func matchPresent(keywords []string, text string) []string {
	var out []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// splitSentences breaks text on `.`, `!`, or `?` followed by whitespace,
// keeping the terminator with the sentence and keeping any trailing fragment.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			j := i + 1
			if j < len(text) && isSpace(text[j]) {
				out = append(out, text[start:i+1])
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				start = j
				i = j - 1
			}
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// capRunes truncates text to at most n runes.
func capRunes(text string, n int) string {
	if len(text) <= n {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
