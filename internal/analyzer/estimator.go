package analyzer

import "github.com/jonreiter/govader"

// Estimate is a polarity/subjectivity pair produced by an estimator.
type Estimate struct {
	Polarity     float64
	Subjectivity float64
}

// PolarityEstimator scores free text for sentiment. Implementations must be
// safe for concurrent use. The boolean return reports whether a real estimate
// was produced; when false, callers fall back to keyword-ratio scoring.
type PolarityEstimator interface {
	Estimate(text string) (Estimate, bool)
}

// VaderEstimator scores text with the VADER lexicon model. It runs fully
// in-process; no network calls.
type VaderEstimator struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderEstimator builds a lexicon-backed estimator.
func NewVaderEstimator() *VaderEstimator {
	return &VaderEstimator{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Estimate returns the compound polarity in [-1,1]. VADER has no subjectivity
// notion, so the non-neutral mass (positive + negative) stands in for it.
func (e *VaderEstimator) Estimate(text string) (Estimate, bool) {
	scores := e.sia.PolarityScores(text)
	subjectivity := scores.Positive + scores.Negative
	if subjectivity > 1 {
		subjectivity = 1
	}
	if subjectivity < 0 {
		subjectivity = 0
	}
	return Estimate{Polarity: scores.Compound, Subjectivity: subjectivity}, true
}

// NullEstimator always reports neutral and never claims a real estimate,
// which keeps scoring on the keyword-ratio path.
type NullEstimator struct{}

// Estimate returns a neutral estimate with ok=false.
func (NullEstimator) Estimate(string) (Estimate, bool) {
	return Estimate{Polarity: 0, Subjectivity: 0.5}, false
}

var (
	_ PolarityEstimator = (*VaderEstimator)(nil)
	_ PolarityEstimator = NullEstimator{}
)
