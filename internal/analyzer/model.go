package analyzer

import "time"

// Concern captures one keyword match plus its cleaned sentence context.
type Concern struct {
	Type     string `json:"type"`
	Keyword  string `json:"keyword"`
	Context  string `json:"context"`
	Severity int    `json:"severity"`
}

// Sentiment describes transcript polarity with a human-readable rationale.
type Sentiment struct {
	Polarity      float64 `json:"polarity"`
	Subjectivity  float64 `json:"subjectivity"`
	Reason        string  `json:"reason,omitempty"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
}

// Result is the full output record of one transcript analysis.
type Result struct {
	SatisfactionScore float64        `json:"satisfaction_score"`
	Sentiment         Sentiment      `json:"sentiment"`
	Concerns          []Concern      `json:"concerns"`
	ConcernCategories map[string]int `json:"concern_categories"`
	KeyPhrases        []string       `json:"key_phrases"`
	UrgencyLevel      string         `json:"urgency_level"`
	RiskScore         float64        `json:"risk_score"`
	AnalyzedAt        time.Time      `json:"analyzed_at"`
	TranscriptLength  int            `json:"transcript_length"`
	HasChat           bool           `json:"has_chat"`
}

// Urgency levels, lowest to highest.
const (
	UrgencyNone   = "none"
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)
